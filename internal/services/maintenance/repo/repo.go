// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/services/maintenance/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// ClaimLease claims the singleton maintenance_state row with one conditional
// UPDATE...RETURNING statement; the claim succeeds only when a row comes back
func (r *queries) ClaimLease(ctx context.Context, owner string, ttl time.Duration) (bool, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE maintenance_state
		   SET lease_owner = $1,
		       lease_expires_at = now() + ($2 || ' seconds')::interval,
		       in_progress = true,
		       last_maintenance = now()
		 WHERE id = 1
		   AND (lease_expires_at IS NULL OR lease_expires_at <= now())
		RETURNING true
	`, owner, int64(ttl/time.Second))

	var claimed bool
	if err := row.Scan(&claimed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return claimed, nil
}

// ReleaseLease clears the lease held by owner, marking the pass done. A
// mismatched owner (lease already reclaimed by someone else) is a no-op
func (r *queries) ReleaseLease(ctx context.Context, owner string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE maintenance_state
		   SET in_progress = false, lease_expires_at = now()
		 WHERE id = 1 AND lease_owner = $1
	`, owner)
	return err
}

// PurgeLogsBefore deletes logs rows for projectID older than cutoffDayID
func (r *queries) PurgeLogsBefore(ctx context.Context, projectID int64, cutoffDayID int) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM logs WHERE project_id = $1 AND day_id < $2
	`, projectID, cutoffDayID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// PurgeIdleTrackers deletes fingerprint_trackers rows idle since before cutoff
func (r *queries) PurgeIdleTrackers(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM fingerprint_trackers WHERE last_seen_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
