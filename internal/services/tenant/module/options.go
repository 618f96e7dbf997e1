package module

import (
	"time"

	"overflowd/internal/platform/config"
)

// Options configures the tenant module
type Options struct {
	LookupTimeout    time.Duration
	DefaultRetention int
	DefaultMinuteCap int
}

// FromConfig fills options from environment. TENANT_LOOKUP_TIMEOUT
// (default 10s) bounds the api-key-hash registry lookup; DEFAULT_RETENTION_DAYS
// and RATE_LIMIT_PER_MINUTE are flat (unprefixed) keys per §6.3, used when
// Provision is called without an explicit retention or minute cap
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("TENANT_")
	return Options{
		LookupTimeout:    n.MayDuration("LOOKUP_TIMEOUT", 10*time.Second),
		DefaultRetention: cfg.MayInt("DEFAULT_RETENTION_DAYS", 3),
		DefaultMinuteCap: cfg.MayInt("RATE_LIMIT_PER_MINUTE", 5000),
	}
}
