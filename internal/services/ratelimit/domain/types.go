// Package domain defines the core types and interfaces for the two-tier rate limiter
package domain

import "context"

// Kind distinguishes the two counter tiers the spec evaluates per request
type Kind string

const (
	// KindAddress is the source-network-address tier, always applied to
	// authenticated API requests
	KindAddress Kind = "address"

	// KindTenant is the authenticated-tenant tier, applied after auth succeeds
	KindTenant Kind = "tenant"
)

// Decision is the outcome of checking one tier
type Decision struct {
	Kind      Kind
	Allowed   bool
	Limit     int
	Count     int
	Remaining int   // max(0, Limit-Count)
	ResetUnix int64 // unix seconds when the current minute bucket rolls over
}

// Repo is the storage contract the rate limiter binds against
type Repo interface {
	// IncrementAndRead atomically upserts (kind, key, minute) incrementing
	// count, and returns the post-increment count
	IncrementAndRead(ctx context.Context, kind Kind, key string, minute int64) (int, error)

	// PurgeOlderThan deletes counter rows of the given kind whose minute_utc
	// is strictly less than cutoffMinute, returning the number of rows removed
	PurgeOlderThan(ctx context.Context, kind Kind, cutoffMinute int64) (int64, error)
}

// Port is the public surface other modules consume
type Port interface {
	// Check evaluates one tier for the current minute bucket against cap,
	// returning a Decision with the observability fields already populated
	Check(ctx context.Context, kind Kind, key string, cap int) (Decision, error)
}
