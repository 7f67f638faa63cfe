package modules

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/sidyfoba/solarcom-console/internal/api/handlers"
	"github.com/sidyfoba/solarcom-console/internal/api/middleware"
	"github.com/sidyfoba/solarcom-console/internal/jobs"
	"github.com/sidyfoba/solarcom-console/internal/service"
)

// PlatformModule owns accounts, the project and HR catalogs, and the
// notification inbox with its retention cleanup.
type PlatformModule struct {
	infra   *Infrastructure
	users   *service.UserService
	cleanup *jobs.NotificationCleanupWorker
}

// NewPlatformModule wires account and catalog services.
func NewPlatformModule(infra *Infrastructure) *PlatformModule {
	tokens := middleware.NewTokenManager(infra.JWTCfg)
	return &PlatformModule{
		infra:   infra,
		users:   service.NewUserService(infra.Store, tokens, infra.Config.Security.BcryptCost),
		cleanup: jobs.NewNotificationCleanupWorker(infra.Store, infra.Config.Jobs.NotificationRetention),
	}
}

func (m *PlatformModule) Name() string { return "platform" }

func (m *PlatformModule) ContributeServerDeps(deps *handlers.ServerDeps) {
	deps.Users = m.users
	deps.Catalog = m.infra.Store
	deps.HR = m.infra.Store
	deps.Inbox = m.infra.Store
	deps.Audits = m.infra.Store
}

func (m *PlatformModule) RegisterWorkers(workers *river.Workers) {
	river.AddWorker(workers, m.cleanup)
}

func (m *PlatformModule) PeriodicJobs() []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(24*time.Hour),
			func() (river.JobArgs, *river.InsertOpts) {
				return jobs.NotificationCleanupArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

func (m *PlatformModule) Shutdown(context.Context) error { return nil }
