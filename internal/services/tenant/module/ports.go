package module

import (
	tdom "overflowd/internal/services/tenant/domain"
)

// Ports exported by the tenant module
type Ports struct {
	Registry tdom.RegistryPort
}
