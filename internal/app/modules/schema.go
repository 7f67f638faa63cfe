package modules

import (
	"context"

	"github.com/riverqueue/river"

	"github.com/sidyfoba/solarcom-console/internal/api/handlers"
	"github.com/sidyfoba/solarcom-console/internal/service"
)

// SchemaModule owns the template/instance schema engine: template
// authoring, instance lifecycle and spreadsheet header import.
type SchemaModule struct {
	templates *service.TemplateService
	instances *service.InstanceService
	imports   *service.ImportService
}

// NewSchemaModule wires the schema engine services.
func NewSchemaModule(infra *Infrastructure) *SchemaModule {
	return &SchemaModule{
		templates: service.NewTemplateService(infra.Store, infra.AuditLogger),
		instances: service.NewInstanceService(infra.Store, infra.AuditLogger),
		imports:   service.NewImportService(infra.Pools),
	}
}

func (m *SchemaModule) Name() string { return "schema" }

func (m *SchemaModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	deps.Templates = m.templates
	deps.Instances = m.instances
	deps.Imports = m.imports
}

func (m *SchemaModule) RegisterWorkers(_ *river.Workers) {}

func (m *SchemaModule) PeriodicJobs() []*river.PeriodicJob { return nil }

func (m *SchemaModule) Shutdown(context.Context) error { return nil }
