// Package repo provides Postgres bindings for domain.Repo
package repo

import (
	"context"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/platform/store"
	"overflowd/internal/services/tenant/domain"

	perr "overflowd/internal/platform/errors"
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

func scanTenant(r store.Row) (domain.Tenant, error) {
	var t domain.Tenant
	err := r.Scan(
		&t.ID, &t.Slug, &t.Name, &t.APIKeyHash,
		&t.RetentionDays, &t.MinuteCap, &t.SamplePolicy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

const tenantCols = `id, slug, name, api_key_hash, retention_days, minute_cap, sample_policy, created_at, updated_at`

// FindByAPIKeyHash looks up a tenant by its hex SHA-256 key hash
func (r *queries) FindByAPIKeyHash(ctx context.Context, hash string) (domain.Tenant, error) {
	t, err := store.One(ctx, r.q, scanTenant, `
		SELECT `+tenantCols+`
		  FROM projects
		 WHERE api_key_hash = $1
	`, hash)
	if err != nil {
		if err == perr.ErrNotFound {
			return domain.Tenant{}, perr.ProjectNotFoundf("project not found")
		}
		return domain.Tenant{}, err
	}
	return t, nil
}

// Insert creates a new tenant row
func (r *queries) Insert(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	return store.One(ctx, r.q, scanTenant, `
		INSERT INTO projects (slug, name, api_key_hash, retention_days, minute_cap, sample_policy)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+tenantCols+`
	`, t.Slug, t.Name, t.APIKeyHash, t.RetentionDays, t.MinuteCap, t.SamplePolicy)
}

// ListActive returns every tenant, ordered by id
func (r *queries) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	return store.Many(ctx, r.q, scanTenant, `
		SELECT `+tenantCols+`
		  FROM projects
		 ORDER BY id
	`)
}
