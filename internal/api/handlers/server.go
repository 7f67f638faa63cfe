// Package handlers implements the HTTP handlers for the Solarcom console
// API. Handlers translate between transport and the service layer; route
// registration lives in internal/app.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/sidyfoba/solarcom-console/internal/api/middleware"
	"github.com/sidyfoba/solarcom-console/internal/pkg/worker"
	"github.com/sidyfoba/solarcom-console/internal/service"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// CatalogStore is the persistence surface the project handlers need.
type CatalogStore interface {
	CreateProject(ctx context.Context, p *store.Project) error
	GetProject(ctx context.Context, id string) (*store.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*store.Project, int, error)
	UpdateProject(ctx context.Context, p *store.Project) error
	DeleteProject(ctx context.Context, id string) error
}

// HRStore is the persistence surface the HR handlers need.
type HRStore interface {
	CreateEmployee(ctx context.Context, e *store.Employee) error
	GetEmployee(ctx context.Context, id string) (*store.Employee, error)
	ListEmployees(ctx context.Context, limit, offset int) ([]*store.Employee, int, error)
	UpdateEmployee(ctx context.Context, e *store.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	CreateTeam(ctx context.Context, t *store.Team) error
	ListTeams(ctx context.Context) ([]*store.Team, error)
	UpdateTeam(ctx context.Context, t *store.Team) error
	DeleteTeam(ctx context.Context, id string) error
	CreateJobPosition(ctx context.Context, j *store.JobPosition) error
	ListJobPositions(ctx context.Context) ([]*store.JobPosition, error)
	UpdateJobPosition(ctx context.Context, j *store.JobPosition) error
	DeleteJobPosition(ctx context.Context, id string) error
}

// NotificationStore is the persistence surface the notification handlers need.
type NotificationStore interface {
	ListNotifications(ctx context.Context, limit, offset int) ([]*store.Notification, int, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// AuditStore reads the append-only audit trail.
type AuditStore interface {
	ListAuditByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]*store.AuditEntry, error)
}

// Pinger reports database liveness for the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds all API handlers.
type Server struct {
	templates *service.TemplateService
	instances *service.InstanceService
	users     *service.UserService
	imports   *service.ImportService
	catalog   CatalogStore
	hr        HRStore
	inbox     NotificationStore
	audits    AuditStore
	pools     *worker.Pools
	db        Pinger
	jwtCfg    middleware.JWTConfig
}

// ServerDeps holds all dependencies for creating a Server. Manual DI, no
// framework.
type ServerDeps struct {
	Templates *service.TemplateService
	Instances *service.InstanceService
	Users     *service.UserService
	Imports   *service.ImportService
	Catalog   CatalogStore
	HR        HRStore
	Inbox     NotificationStore
	Audits    AuditStore
	Pools     *worker.Pools
	DB        Pinger
	JWTCfg    middleware.JWTConfig
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		templates: deps.Templates,
		instances: deps.Instances,
		users:     deps.Users,
		imports:   deps.Imports,
		catalog:   deps.Catalog,
		hr:        deps.HR,
		inbox:     deps.Inbox,
		audits:    deps.Audits,
		pools:     deps.Pools,
		db:        deps.DB,
		jwtCfg:    deps.JWTCfg,
	}
}

// actorFromCtx extracts the authenticated user ID from the request context.
func actorFromCtx(c *gin.Context) string {
	if uid := c.GetString("user_id"); uid != "" {
		return uid
	}
	return "anonymous"
}

// fail records the error for the centralized error handler and aborts.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
