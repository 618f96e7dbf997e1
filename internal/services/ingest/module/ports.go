package module

import (
	adom "overflowd/internal/services/auth/domain"
	mdom "overflowd/internal/services/maintenance/domain"
	rldom "overflowd/internal/services/ratelimit/domain"
)

// Ports declares the ports the ingest module requires from other modules,
// injected at wiring time via modkit.WithPorts(Ports{...})
type Ports struct {
	Auth     adom.Port
	Limiter  rldom.Port
	Trigger  mdom.Trigger // optional: nil disables the maintenance self-trigger
}
