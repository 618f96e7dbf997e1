// Package module wires the maintenance scheduler into the application using modkit
package module

import (
	"overflowd/internal/modkit"
	"overflowd/internal/modkit/httpkit"
	"overflowd/internal/modkit/repokit"

	mrepo "overflowd/internal/services/maintenance/repo"
	mservice "overflowd/internal/services/maintenance/service"
)

// Module implements modkit.Module for the maintenance scheduler.
// It mounts no HTTP routes; it is consumed in-process by the ingest module
type Module struct {
	deps modkit.Deps
	svc  *mservice.Svc
}

// New constructs the maintenance module. The rate-limit Purger and tenant
// Lister ports must be injected via modkit.WithPorts(module.Ports{...});
// New panics if either is missing
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("maintenance"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Purger == nil {
		panic("maintenance module requires Purger port (from services/ratelimit)")
	}
	if injected.Lister == nil {
		panic("maintenance module requires Lister port (from services/tenant)")
	}

	cfg := FromConfig(deps.Cfg)
	svc := mservice.New(
		repokit.TxRunner(deps.PG),
		mrepo.NewPG(),
		injected.Purger,
		injected.Lister,
		mservice.Config{
			TriggerInterval:       cfg.TriggerInterval,
			LeaseTTL:              cfg.LeaseTTL,
			AddressCounterCutoff:  cfg.AddressCounterCutoff,
			TenantCounterCutoff:   cfg.TenantCounterCutoff,
			TrackerIdle:           cfg.TrackerIdle,
		},
		deps.Log,
	)

	return &Module{deps: deps, svc: svc}
}

// Name returns the module name
func (m *Module) Name() string { return "maintenance" }

// Ports returns the maintenance trigger, consumed by the ingest module
func (m *Module) Ports() any { return m.svc }

// MountRoutes is a no-op: the maintenance scheduler has no HTTP routes of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}
