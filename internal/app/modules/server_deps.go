package modules

import (
	"github.com/sidyfoba/solarcom-console/internal/api/handlers"
	"github.com/sidyfoba/solarcom-console/internal/config"
)

// NewServerDeps builds base server deps then lets each module contribute
// its own wiring.
func NewServerDeps(cfg *config.Config, infra *Infrastructure, mods []Module) handlers.ServerDeps {
	deps := handlers.ServerDeps{
		Pools:  infra.Pools,
		DB:     infra.DB.Pool,
		JWTCfg: infra.JWTCfg,
	}
	for _, mod := range mods {
		if mod == nil {
			continue
		}
		mod.ContributeServerDeps(&deps)
	}
	return deps
}
