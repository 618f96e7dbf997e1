// Package service implements the tenant registry (C3)
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/services/tenant/domain"

	perr "overflowd/internal/platform/errors"
)

// Config tunes the registry's runtime behavior
type Config struct {
	// LookupTimeout bounds a single FindByAPIKeyHash round-trip (spec: ~10s)
	LookupTimeout time.Duration
	// DefaultRetention is used by Provision when no retention is supplied
	DefaultRetention int
	// DefaultMinuteCap is used by Provision when no minute cap is supplied
	DefaultMinuteCap int
}

// Svc implements domain.RegistryPort over a repokit.Binder[domain.Repo]
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	cfg    Config
}

// New constructs the tenant registry service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config) *Svc {
	if db == nil {
		panic("tenant.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("tenant.Service requires a non-nil Repo binder")
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 10 * time.Second
	}
	if cfg.DefaultRetention <= 0 {
		cfg.DefaultRetention = 3
	}
	if cfg.DefaultMinuteCap <= 0 {
		cfg.DefaultMinuteCap = 5000
	}
	return &Svc{db: db, binder: binder, cfg: cfg}
}

// Lookup resolves a tenant by api key hash, bounded by cfg.LookupTimeout.
// A timeout or connection failure surfaces as a DATABASE_ERROR, distinct
// from the ordinary not-found case
func (s *Svc) Lookup(ctx context.Context, apiKeyHash string) (domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	var t domain.Tenant
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		t, err = s.binder.Bind(q).FindByAPIKeyHash(ctx, apiKeyHash)
		return err
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeProjectNotFound) {
			return domain.Tenant{}, err
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Tenant{}, perr.DatabaseErrorf("tenant lookup timed out")
		}
		return domain.Tenant{}, perr.DatabaseErrorf("tenant lookup failed: %v", err)
	}
	return t, nil
}

// Provision creates a tenant with a freshly generated API key, returning the
// tenant row and the one-time plaintext key (never recoverable afterwards)
func (s *Svc) Provision(
	ctx context.Context, slug, name string, retentionDays, minuteCap int,
) (domain.Tenant, string, error) {
	if retentionDays <= 0 {
		retentionDays = s.cfg.DefaultRetention
	}
	if minuteCap <= 0 {
		minuteCap = s.cfg.DefaultMinuteCap
	}

	plaintext, err := newAPIKey()
	if err != nil {
		return domain.Tenant{}, "", perr.Internalf("could not generate api key: %v", err)
	}

	var t domain.Tenant
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		t, err = s.binder.Bind(q).Insert(ctx, domain.Tenant{
			Slug:          slug,
			Name:          name,
			APIKeyHash:    domain.HashAPIKey(plaintext),
			RetentionDays: retentionDays,
			MinuteCap:     minuteCap,
		})
		return err
	})
	if err != nil {
		return domain.Tenant{}, "", perr.DBInsertFailedf("provision tenant: %v", err)
	}
	return t, plaintext, nil
}

// ListActive returns every tenant, used by the maintenance scheduler's
// per-tenant retention purge (§4.6)
func (s *Svc) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	var out []domain.Tenant
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.binder.Bind(q).ListActive(ctx)
		return err
	})
	if err != nil {
		return nil, perr.DatabaseErrorf("list tenants: %v", err)
	}
	return out, nil
}

// newAPIKey returns 32 random bytes hex-encoded (64 chars), plenty of entropy
// for a bearer secret that is hashed at rest and never stored plaintext
func newAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
