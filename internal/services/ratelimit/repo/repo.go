// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/platform/store"
	"overflowd/internal/services/ratelimit/domain"
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

// IncrementAndRead upserts (kind, key, minute) incrementing count and
// returns the post-increment value in a single round-trip
func (r *queries) IncrementAndRead(ctx context.Context, kind domain.Kind, key string, minute int64) (int, error) {
	return store.Scalar[int](ctx, r.q, `
		INSERT INTO project_minute_counters (kind, key, minute_utc, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (kind, key, minute_utc)
		DO UPDATE SET count = project_minute_counters.count + 1
		RETURNING count
	`, string(kind), key, minute)
}

// PurgeOlderThan deletes counter rows of kind older than cutoffMinute
func (r *queries) PurgeOlderThan(ctx context.Context, kind domain.Kind, cutoffMinute int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM project_minute_counters
		 WHERE kind = $1 AND minute_utc < $2
	`, string(kind), cutoffMinute)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
