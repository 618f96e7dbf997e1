// Package service implements the two-tier rate limiter (C4)
package service

import (
	"context"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/services/ratelimit/domain"

	perr "overflowd/internal/platform/errors"
	ptime "overflowd/internal/platform/time"

	"time"
)

// Svc implements domain.Port over a repokit.Binder[domain.Repo]
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
}

// New constructs the rate limiter service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("ratelimit.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("ratelimit.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// Check evaluates one tier for the current minute bucket
func (s *Svc) Check(ctx context.Context, kind domain.Kind, key string, cap int) (domain.Decision, error) {
	m := ptime.MinuteBucket(time.Now())

	var count int
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		count, err = s.binder.Bind(q).IncrementAndRead(ctx, kind, key, m)
		return err
	})
	if err != nil {
		return domain.Decision{}, perr.DBQueryFailedf("rate limit counter: %v", err)
	}

	remaining := cap - count
	if remaining < 0 {
		remaining = 0
	}
	return domain.Decision{
		Kind:      kind,
		Allowed:   count <= cap,
		Limit:     cap,
		Count:     count,
		Remaining: remaining,
		ResetUnix: (m + 1) * 60,
	}, nil
}

// PurgeExpired deletes counter rows older than cutoffMinute for kind.
// Exposed for the maintenance scheduler; not part of domain.Port
func (s *Svc) PurgeExpired(ctx context.Context, kind domain.Kind, cutoffMinute int64) (int64, error) {
	var n int64
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		n, err = s.binder.Bind(q).PurgeOlderThan(ctx, kind, cutoffMinute)
		return err
	})
	return n, err
}
