package modules

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/sidyfoba/solarcom-console/internal/api/middleware"
	"github.com/sidyfoba/solarcom-console/internal/config"
	"github.com/sidyfoba/solarcom-console/internal/governance/audit"
	"github.com/sidyfoba/solarcom-console/internal/infrastructure"
	"github.com/sidyfoba/solarcom-console/internal/pkg/worker"
	"github.com/sidyfoba/solarcom-console/internal/store"
)

// Infrastructure holds shared cross-cutting dependencies for all modules.
// It is a provider, not a Module.
type Infrastructure struct {
	Config      *config.Config
	DB          *infrastructure.DatabaseClients
	Store       *store.Store
	Pools       *worker.Pools
	RiverClient *river.Client[pgx.Tx]
	AuditLogger *audit.Logger
	JWTCfg      middleware.JWTConfig
}

// NewInfrastructure initializes the database, worker pools and shared
// services.
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	db, err := infrastructure.NewDatabaseClients(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	// Dev-mode: auto-create application tables + River queue tables.
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	pools, err := worker.NewPools(ctx, worker.PoolConfig{
		GeneralPoolSize: cfg.Worker.GeneralPoolSize,
		ImportPoolSize:  cfg.Worker.ImportPoolSize,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init worker pools: %w", err)
	}

	return &Infrastructure{
		Config:      cfg,
		DB:          db,
		Store:       db.Store,
		Pools:       pools,
		AuditLogger: audit.NewLogger(db.Store, pools),
		JWTCfg: middleware.JWTConfig{
			SigningKey: []byte(cfg.Security.JWTSecret),
			Issuer:     "solarcom-console",
			ExpiresIn:  cfg.Security.TokenLifetime,
		},
	}, nil
}

// InitRiver initializes the River client on top of a prepared worker
// registry and the modules' periodic jobs.
func (i *Infrastructure) InitRiver(workers *river.Workers, periodic []*river.PeriodicJob) error {
	if i == nil || i.DB == nil || i.Config == nil {
		return fmt.Errorf("infrastructure is not initialized")
	}
	if err := i.DB.InitRiverClient(workers, periodic, i.Config.River); err != nil {
		return fmt.Errorf("init river: %w", err)
	}
	i.RiverClient = i.DB.RiverClient
	return nil
}

// Close releases infra resources in reverse dependency order.
func (i *Infrastructure) Close() {
	if i == nil {
		return
	}
	if i.Pools != nil {
		i.Pools.Shutdown()
	}
	if i.DB != nil {
		i.DB.Close()
	}
}
