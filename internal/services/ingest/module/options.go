package module

import "overflowd/internal/platform/config"

// Options configures the ingest module (§6.3)
type Options struct {
	MaxEventsPerPost int
	MaxQueryLimit    int
	MaxPayloadBytes  int64
}

// FromConfig fills options from environment. MAX_EVENTS_PER_POST and
// MAX_PAYLOAD_BYTES are flat (unprefixed) keys per §6.3; MAX_QUERY_LIMIT is
// this module's own addition for the query endpoint and lives under INGEST_
func FromConfig(cfg config.Conf) Options {
	return Options{
		MaxEventsPerPost: cfg.MayInt("MAX_EVENTS_PER_POST", 250),
		MaxQueryLimit:    cfg.Prefix("INGEST_").MayInt("MAX_QUERY_LIMIT", 1000),
		MaxPayloadBytes:  int64(cfg.MayInt("MAX_PAYLOAD_BYTES", 524288)),
	}
}
