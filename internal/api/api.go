// Package api wires the HTTP surface for overflowd: tenant registry,
// rate limiter, authenticator, maintenance scheduler, and the ingestion/
// query pipeline that is the only module mounting routes of its own
package api

import (
	"net/http"

	"overflowd/internal/platform/config"
	"overflowd/internal/platform/logger"
	phttp "overflowd/internal/platform/net/http"
	"overflowd/internal/platform/store"

	"overflowd/internal/modkit"
	"overflowd/internal/modkit/httpkit"
	"overflowd/internal/modkit/module"

	adom "overflowd/internal/services/auth/domain"
	authmod "overflowd/internal/services/auth/module"
	mdom "overflowd/internal/services/maintenance/domain"
	maintenancemod "overflowd/internal/services/maintenance/module"
	rldom "overflowd/internal/services/ratelimit/domain"
	ratelimitmod "overflowd/internal/services/ratelimit/module"
	tdom "overflowd/internal/services/tenant/domain"
	tenantmod "overflowd/internal/services/tenant/module"

	ingestmod "overflowd/internal/services/ingest/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         logger.Logger
	EnableProfiler bool
}

// Mount wires every module and mounts the ingestion/query routes under /api
func Mount(r phttp.Router, opt Options) {
	r.Use(httpkit.CommonStack()...)

	httpkit.Get(r, "/healthz", func(_ *http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		Log: opt.Logger,
	}

	// Tenant registry and rate limiter have no cross-module dependencies of
	// their own; build them first so their ports can be injected downstream
	tenantMod := tenantmod.New(deps)
	ratelimitMod := ratelimitmod.New(deps)

	authMod := authmod.New(deps, modkit.WithPorts(authmod.Ports{
		Registry: module.MustPortsOf[tdom.RegistryPort](tenantMod),
	}))

	maintenanceMod := maintenancemod.New(deps, modkit.WithPorts(maintenancemod.Ports{
		Purger: module.MustPortsOf[ratelimitmod.PurgerPort](ratelimitMod),
		Lister: module.MustPortsOf[tdom.Lister](tenantMod),
	}))

	ingestMod := ingestmod.New(deps, modkit.WithPorts(ingestmod.Ports{
		Auth:    module.MustPortsOf[adom.Port](authMod),
		Limiter: module.MustPortsOf[rldom.Port](ratelimitMod),
		Trigger: module.MustPortsOf[mdom.Trigger](maintenanceMod),
	}))

	mods := []module.Module{tenantMod, ratelimitMod, authMod, maintenanceMod, ingestMod}

	httpkit.MountUnder(r, "/api", nil, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
