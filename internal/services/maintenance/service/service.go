// Package service implements the maintenance scheduler (C7): on-path
// housekeeping triggered by a successful ingest, gated by a process-local
// clock and a store-wide lease so at most one instance runs a pass at a time
package service

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/platform/logger"
	"overflowd/internal/services/maintenance/domain"
	rldom "overflowd/internal/services/ratelimit/domain"
	ptime "overflowd/internal/platform/time"
)

// Config tunes the scheduler's timing (§4.6)
type Config struct {
	// TriggerInterval is the minimum process-local gap between passes (spec: 5m)
	TriggerInterval time.Duration
	// LeaseTTL bounds how long a claimed pass may run before self-expiring (spec: 10m)
	LeaseTTL time.Duration
	// AddressCounterCutoff and TenantCounterCutoff are, in minutes, how far
	// back from the current minute bucket each counter kind is purged
	AddressCounterCutoff int64
	TenantCounterCutoff  int64
	// TrackerIdle is how long a fingerprint tracker may sit unseen before purge
	TrackerIdle time.Duration
}

// Svc implements domain.Trigger
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	purger domain.Purger
	lister domain.TenantLister
	cfg    Config
	log    logger.Logger
	owner  string

	lastTriggeredAt atomic.Int64 // unix nano, process-local gate
}

// New constructs the maintenance scheduler
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.Repo],
	purger domain.Purger,
	lister domain.TenantLister,
	cfg Config,
	log logger.Logger,
) *Svc {
	if db == nil {
		panic("maintenance.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("maintenance.Service requires a non-nil Repo binder")
	}
	if purger == nil {
		panic("maintenance.Service requires a non-nil rate-limit Purger")
	}
	if lister == nil {
		panic("maintenance.Service requires a non-nil tenant Lister")
	}
	if cfg.TriggerInterval <= 0 {
		cfg.TriggerInterval = 5 * time.Minute
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = 10 * time.Minute
	}
	if cfg.AddressCounterCutoff <= 0 {
		cfg.AddressCounterCutoff = 2
	}
	if cfg.TenantCounterCutoff <= 0 {
		cfg.TenantCounterCutoff = 120
	}
	if cfg.TrackerIdle <= 0 {
		cfg.TrackerIdle = 24 * time.Hour
	}
	return &Svc{
		db: db, binder: binder, purger: purger, lister: lister, cfg: cfg, log: log,
		owner: fmt.Sprintf("overflowd:%d", os.Getpid()),
	}
}

// MaybeTrigger implements domain.Trigger. It never blocks the caller: the
// pass, if started, runs on its own goroutine detached from ctx's deadline
func (s *Svc) MaybeTrigger(ctx context.Context) {
	now := time.Now()
	last := time.Unix(0, s.lastTriggeredAt.Load())
	if now.Sub(last) < s.cfg.TriggerInterval {
		return
	}
	// advance the gate before spawning so concurrent callers within this
	// process see the new value and skip (§4.6 step 2)
	if !s.lastTriggeredAt.CompareAndSwap(last.UnixNano(), now.UnixNano()) {
		return
	}
	go s.run(context.WithoutCancel(ctx))
}

// run executes one maintenance pass, tolerating individual-step failure
func (s *Svc) run(ctx context.Context) {
	claimed, err := s.claim(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("maintenance: lease claim failed")
		return
	}
	if !claimed {
		return
	}
	defer s.release(ctx)

	minute := ptime.MinuteBucket(time.Now())

	if _, err := s.purger.PurgeExpired(ctx, rldom.KindAddress, minute-s.cfg.AddressCounterCutoff); err != nil {
		s.log.Error().Err(err).Msg("maintenance: address counter expiry failed")
	}
	if _, err := s.purger.PurgeExpired(ctx, rldom.KindTenant, minute-s.cfg.TenantCounterCutoff); err != nil {
		s.log.Error().Err(err).Msg("maintenance: tenant counter expiry failed")
	}

	if err := s.purgeRetention(ctx); err != nil {
		s.log.Error().Err(err).Msg("maintenance: retention purge failed")
	}

	if err := s.purgeTrackers(ctx); err != nil {
		s.log.Error().Err(err).Msg("maintenance: tracker expiry failed")
	}
}

func (s *Svc) claim(ctx context.Context) (bool, error) {
	var claimed bool
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		claimed, err = s.binder.Bind(q).ClaimLease(ctx, s.owner, s.cfg.LeaseTTL)
		return err
	})
	return claimed, err
}

func (s *Svc) release(ctx context.Context) {
	_ = s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).ReleaseLease(ctx, s.owner)
	})
}

// purgeRetention deletes logs older than each tenant's own retention_days
// (§9 Open Question 2: per-tenant, not a single global default)
func (s *Svc) purgeRetention(ctx context.Context) error {
	tenants, err := s.lister.ListActive(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, t := range tenants {
		cutoff := ptime.DayID(now.AddDate(0, 0, -t.RetentionDays))
		err := s.db.Tx(ctx, func(q repokit.Queryer) error {
			_, err := s.binder.Bind(q).PurgeLogsBefore(ctx, t.ID, cutoff)
			return err
		})
		if err != nil {
			s.log.Error().Err(err).Int64("project_id", t.ID).Msg("maintenance: per-tenant retention purge failed")
		}
	}
	return nil
}

func (s *Svc) purgeTrackers(ctx context.Context) error {
	cutoff := time.Now().Add(-s.cfg.TrackerIdle)
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		_, err := s.binder.Bind(q).PurgeIdleTrackers(ctx, cutoff)
		return err
	})
}
