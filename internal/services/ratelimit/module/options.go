package module

import "overflowd/internal/platform/config"

// Options configures the rate limiter module
type Options struct {
	PerMinute int // RATE_LIMIT_PER_MINUTE; not used for enforcement: the tenant tier checks each tenant's own MinuteCap
	PerIP     int // RATE_LIMIT_PER_IP: address-tier cap
}

// FromConfig fills options from the root (unprefixed) environment, matching
// the spec's flat §6.3 key names
func FromConfig(cfg config.Conf) Options {
	return Options{
		PerMinute: cfg.MayInt("RATE_LIMIT_PER_MINUTE", 5000),
		PerIP:     cfg.MayInt("RATE_LIMIT_PER_IP", 100),
	}
}
