package domain

import (
	"context"

	tdom "overflowd/internal/services/tenant/domain"
)

// Repo is the storage contract the ingestion pipeline and query service bind against
type Repo interface {
	// BulkInsert writes rows in a single multi-row statement, returning the
	// number of rows actually committed. Rejects an empty rows slice as a no-op
	BulkInsert(ctx context.Context, rows []StoredLog) (int64, error)

	// Query returns at most f.Limit rows for projectID, ordered by created_at DESC
	Query(ctx context.Context, projectID int64, f Filter) ([]StoredLog, error)
}

// MaintenanceTrigger is the narrow seam the pipeline uses to kick the
// maintenance scheduler after a successful insert (§4.6). Implementations
// must be non-blocking: the call returns before the task finishes
type MaintenanceTrigger interface {
	MaybeTrigger(ctx context.Context)
}

// Port is the public surface the HTTP layer consumes
type Port interface {
	// Ingest validates and persists a batch for tenant, returning the
	// received/processed counts and a correlation request id
	Ingest(ctx context.Context, tenant tdom.Tenant, events []LogEvent) (IngestResult, error)

	// Query returns tenant-scoped logs matching f
	Query(ctx context.Context, tenant tdom.Tenant, f Filter) ([]StoredLog, error)
}
