// Package module wires the ingestion pipeline and query service into the
// application using modkit
package module

import (
	"net/http"

	"overflowd/internal/modkit"
	"overflowd/internal/modkit/httpkit"
	"overflowd/internal/modkit/repokit"

	ihttp "overflowd/internal/services/ingest/http"
	irepo "overflowd/internal/services/ingest/repo"
	iservice "overflowd/internal/services/ingest/service"
)

// Module implements the ingest API module: the one component in this
// application that actually mounts HTTP routes
type Module struct {
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	ports any
}

// New constructs the ingest module. Auth and Limiter ports are required and
// must be injected via modkit.WithPorts(module.Ports{...}); New panics
// otherwise. Trigger is optional: nil disables the maintenance self-trigger
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("ingest"),
		modkit.WithPrefix(""),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Auth == nil {
		panic("ingest module requires Auth port (from services/auth)")
	}
	if injected.Limiter == nil {
		panic("ingest module requires Limiter port (from services/ratelimit)")
	}

	cfg := FromConfig(deps.Cfg)

	binder := irepo.NewPG()
	svc := iservice.New(
		repokit.TxRunner(deps.PG),
		binder,
		iservice.Config{
			MaxEventsPerPost: cfg.MaxEventsPerPost,
			MaxQueryLimit:    cfg.MaxQueryLimit,
		},
		injected.Trigger,
	)

	// RATE_LIMIT_PER_IP is a flat, unprefixed key shared with the ratelimit
	// module (§6.3); the tenant-tier cap is read per-request from the
	// resolved tenant's own MinuteCap instead
	perIPCap := deps.Cfg.MayInt("RATE_LIMIT_PER_IP", 100)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
	}
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		ihttp.Register(r, svc, cfg.MaxPayloadBytes, injected.Auth, injected.Limiter, perIPCap)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the ingest query/ingest port (unused by other modules today,
// exported for symmetry and future admin tooling)
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts /log under the module's prefix (empty, giving /api/log
// once the top-level wiring mounts this module under /api)
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "" {
		mount(r)
		return
	}
	r.Route(m.prefix, mount)
}
