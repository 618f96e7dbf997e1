// Package module wires the authenticator into the application using modkit
package module

import (
	"overflowd/internal/modkit"
	"overflowd/internal/modkit/httpkit"

	aservice "overflowd/internal/services/auth/service"
)

// Module implements modkit.Module for the authenticator.
// It mounts no HTTP routes; it is consumed in-process by the ingest module
type Module struct {
	deps modkit.Deps
	svc  *aservice.Svc
}

// New constructs the auth module. The tenant registry port must be injected
// via modkit.WithPorts(module.Ports{Registry: ...}); New panics otherwise
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("auth"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Registry == nil {
		panic("auth module requires Registry port (from services/tenant)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := aservice.New(injected.Registry, aservice.Config{
		HMACSecret: cfg.HMACSecret,
		AdminToken: cfg.AdminToken,
	})

	return &Module{deps: deps, svc: svc}
}

// Name returns the module name
func (m *Module) Name() string { return "auth" }

// Ports returns the authenticator port, consumed by the ingest module
func (m *Module) Ports() any { return m.svc }

// MountRoutes is a no-op: the authenticator has no HTTP routes of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}
