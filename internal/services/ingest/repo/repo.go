// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"
	"fmt"
	"strings"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/platform/store"
	"overflowd/internal/services/ingest/domain"
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

const logCols = 13

// BulkInsert builds a single multi-row VALUES clause of logCols arity and
// executes it in one round-trip. An empty rows slice is a no-op
func (r *queries) BulkInsert(ctx context.Context, rows []domain.StoredLog) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO logs (
		project_id, ts, level, message, source, env, ctx_json,
		user_id, request_id, tags, fingerprint, day_id, created_at
	) VALUES `)

	args := make([]any, 0, len(rows)*logCols)
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i * logCols
		sb.WriteByte('(')
		for c := 0; c < logCols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", base+c+1)
		}
		sb.WriteByte(')')

		args = append(args,
			row.ProjectID, row.TS, row.Level, row.Message, row.Source, row.Env, row.CtxJSON,
			row.UserID, row.RequestID, row.Tags, row.Fingerprint, row.DayID, row.CreatedAt,
		)
	}

	tag, err := r.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanLog(row store.Row) (domain.StoredLog, error) {
	var l domain.StoredLog
	err := row.Scan(
		&l.ID, &l.ProjectID, &l.TS, &l.Level, &l.Message, &l.Source, &l.Env, &l.CtxJSON,
		&l.UserID, &l.RequestID, &l.Tags, &l.Fingerprint, &l.DayID, &l.CreatedAt,
	)
	return l, err
}

// Query returns at most f.Limit rows for projectID, ordered by created_at DESC
func (r *queries) Query(ctx context.Context, projectID int64, f domain.Filter) ([]domain.StoredLog, error) {
	sql := `
		SELECT id, project_id, ts, level, message, source, env, ctx_json,
		       user_id, request_id, tags, fingerprint, day_id, created_at
		  FROM logs
		 WHERE project_id = $1
	`
	args := []any{projectID}

	if f.Level != "" {
		args = append(args, f.Level)
		sql += fmt.Sprintf(" AND level = $%d", len(args))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		sql += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}

	args = append(args, f.Limit, f.Offset)
	sql += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return store.Many(ctx, r.q, scanLog, sql, args...)
}
