// Package module wires up the tenant registry as a modkit.Module
package module

import (
	"overflowd/internal/modkit"
	"overflowd/internal/modkit/httpkit"
	"overflowd/internal/modkit/repokit"

	trepo "overflowd/internal/services/tenant/repo"
	tservice "overflowd/internal/services/tenant/service"
)

// Module implements modkit.Module for the tenant registry.
// It mounts no HTTP routes; it is consumed in-process by auth and ingest
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs and wires the tenant module using deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := trepo.NewPG()
	svc := tservice.New(
		repokit.TxRunner(deps.PG),
		binder,
		tservice.Config{
			LookupTimeout:    opts.LookupTimeout,
			DefaultRetention: opts.DefaultRetention,
			DefaultMinuteCap: opts.DefaultMinuteCap,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Registry: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "tenant" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: the tenant registry has no HTTP routes of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}
