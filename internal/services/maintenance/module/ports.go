package module

import (
	mdom "overflowd/internal/services/maintenance/domain"
)

// Ports declares the ports the maintenance module requires from other
// modules, injected at wiring time via modkit.WithPorts(Ports{...})
type Ports struct {
	Purger mdom.Purger
	Lister mdom.TenantLister
}
