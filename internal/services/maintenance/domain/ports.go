// Package domain defines the core interfaces for the maintenance scheduler (C7)
package domain

import (
	"context"
	"time"

	rldom "overflowd/internal/services/ratelimit/domain"
	tdom "overflowd/internal/services/tenant/domain"
)

// Repo is the storage contract the maintenance scheduler binds against. It
// never touches rate-limit counters directly (see Purger); it owns the
// store-wide lease, per-tenant log retention, and tracker expiry
type Repo interface {
	// ClaimLease atomically claims the singleton maintenance_state row for
	// owner, succeeding only if no lease is held or the prior one expired.
	// Returns false (no error) when another owner currently holds it
	ClaimLease(ctx context.Context, owner string, ttl time.Duration) (bool, error)

	// ReleaseLease clears the lease early so the next trigger doesn't have
	// to wait out the full ttl; a failure here is not fatal, the lease
	// still self-expires
	ReleaseLease(ctx context.Context, owner string) error

	// PurgeLogsBefore deletes logs rows for projectID with day_id strictly
	// less than cutoffDayID, returning the number of rows removed
	PurgeLogsBefore(ctx context.Context, projectID int64, cutoffDayID int) (int64, error)

	// PurgeIdleTrackers deletes fingerprint_trackers rows whose last-seen
	// timestamp is older than cutoff
	PurgeIdleTrackers(ctx context.Context, cutoff time.Time) (int64, error)
}

// Purger is the narrow rate-limiter surface the scheduler consumes to expire
// stale minute-counter rows, satisfied structurally by the ratelimit module
type Purger interface {
	PurgeExpired(ctx context.Context, kind rldom.Kind, cutoffMinute int64) (int64, error)
}

// TenantLister is the narrow tenant-registry surface the scheduler consumes
// to resolve each tenant's own retention window, satisfied structurally by
// the tenant module
type TenantLister interface {
	ListActive(ctx context.Context) ([]tdom.Tenant, error)
}

// Trigger is the seam the ingestion pipeline calls after a successful batch
type Trigger interface {
	MaybeTrigger(ctx context.Context)
}
