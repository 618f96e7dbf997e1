// Package module wires up the rate limiter as a modkit.Module
package module

import (
	"overflowd/internal/modkit"
	"overflowd/internal/modkit/httpkit"
	"overflowd/internal/modkit/repokit"

	rlrepo "overflowd/internal/services/ratelimit/repo"
	rlservice "overflowd/internal/services/ratelimit/service"
)

// Module implements modkit.Module for the rate limiter.
// It mounts no HTTP routes; it is consumed in-process by the ingest module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs and wires the rate limiter module using deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := rlrepo.NewPG()
	svc := rlservice.New(repokit.TxRunner(deps.PG), binder)

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{Limiter: svc, Purger: svc}
	return m
}

// Options returns the resolved limiter configuration (tenant/address caps)
func (m *Module) Options() Options { return m.opts }

// Name returns the module name
func (m *Module) Name() string { return "ratelimit" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: the rate limiter has no HTTP routes of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}
