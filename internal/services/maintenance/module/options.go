package module

import (
	"time"

	"overflowd/internal/platform/config"
)

// Options configures the maintenance module
type Options struct {
	TriggerInterval       time.Duration
	LeaseTTL              time.Duration
	AddressCounterCutoff  int64
	TenantCounterCutoff   int64
	TrackerIdle           time.Duration
}

// FromConfig fills options from environment, prefix MAINTENANCE_
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("MAINTENANCE_")
	return Options{
		TriggerInterval:      n.MayDuration("TRIGGER_INTERVAL", 5*time.Minute),
		LeaseTTL:             n.MayDuration("LEASE_TTL", 10*time.Minute),
		AddressCounterCutoff: int64(n.MayInt("ADDRESS_COUNTER_CUTOFF_MINUTES", 2)),
		TenantCounterCutoff:  int64(n.MayInt("TENANT_COUNTER_CUTOFF_MINUTES", 120)),
		TrackerIdle:          n.MayDuration("TRACKER_IDLE", 24*time.Hour),
	}
}
