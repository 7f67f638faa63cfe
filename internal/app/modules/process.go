package modules

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/sidyfoba/solarcom-console/internal/api/handlers"
	"github.com/sidyfoba/solarcom-console/internal/jobs"
)

// ProcessModule owns the ticket process side: the periodic SLA breach
// scan that flags overdue open tickets.
type ProcessModule struct {
	infra   *Infrastructure
	slaScan *jobs.SLAScanWorker
}

// NewProcessModule wires the SLA scan worker.
func NewProcessModule(infra *Infrastructure) *ProcessModule {
	return &ProcessModule{
		infra:   infra,
		slaScan: jobs.NewSLAScanWorker(infra.Store, infra.Pools),
	}
}

func (m *ProcessModule) Name() string { return "process" }

func (m *ProcessModule) ContributeServerDeps(_ *handlers.ServerDeps) {}

func (m *ProcessModule) RegisterWorkers(workers *river.Workers) {
	river.AddWorker(workers, m.slaScan)
}

func (m *ProcessModule) PeriodicJobs() []*river.PeriodicJob {
	interval := m.infra.Config.Jobs.SLAScanInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(interval),
			func() (river.JobArgs, *river.InsertOpts) {
				return jobs.SLAScanArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

func (m *ProcessModule) Shutdown(context.Context) error { return nil }
