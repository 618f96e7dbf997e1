package module

import (
	tdom "overflowd/internal/services/tenant/domain"
)

// Ports declares the ports the auth module requires from other modules,
// injected at wiring time via modkit.WithPorts(Ports{...})
type Ports struct {
	Registry tdom.RegistryPort
}
