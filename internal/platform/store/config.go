package store

import "time"

// Config aggregates backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs: openPG does not read these; it uses fixed values
	// (20 connect attempts, 3s ping timeout, backoff from 150ms doubling to 2s)
	ConnectRetries int
	PingTimeout    time.Duration
}
