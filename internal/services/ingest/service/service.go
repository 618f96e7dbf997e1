// Package service implements the ingestion pipeline (C6) and query service (C8)
package service

import (
	"context"
	"crypto/sha1" //nolint:gosec // fingerprint is a clustering hint, not a security boundary (§9)
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/services/ingest/domain"
	tdom "overflowd/internal/services/tenant/domain"

	perr "overflowd/internal/platform/errors"
	pstrings "overflowd/internal/platform/strings"
	ptime "overflowd/internal/platform/time"
)

// Config tunes batch limits (§6.3)
type Config struct {
	MaxEventsPerPost int
	MaxQueryLimit    int // hard cap on GET /api/log?limit
}

// Svc implements domain.Port
type Svc struct {
	db         repokit.TxRunner
	binder     repokit.Binder[domain.Repo]
	cfg        Config
	maintainer domain.MaintenanceTrigger // optional; nil is a valid no-op
}

// New constructs the ingestion/query service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config, maintainer domain.MaintenanceTrigger) *Svc {
	if db == nil {
		panic("ingest.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non-nil Repo binder")
	}
	if cfg.MaxEventsPerPost <= 0 {
		cfg.MaxEventsPerPost = 250
	}
	if cfg.MaxQueryLimit <= 0 {
		cfg.MaxQueryLimit = 1000
	}
	return &Svc{db: db, binder: binder, cfg: cfg, maintainer: maintainer}
}

// Ingest validates, derives, and persists a batch for tenant (§4.5)
func (s *Svc) Ingest(ctx context.Context, tenant tdom.Tenant, events []domain.LogEvent) (domain.IngestResult, error) {
	if len(events) == 0 {
		return domain.IngestResult{}, perr.InvalidEventDataf("events must contain at least one entry")
	}
	if len(events) > s.cfg.MaxEventsPerPost {
		return domain.IngestResult{}, perr.TooManyEventsf(
			"batch of %d exceeds the maximum of %d events", len(events), s.cfg.MaxEventsPerPost)
	}

	now := time.Now()
	rows := make([]domain.StoredLog, 0, len(events))
	for i, ev := range events {
		row, err := deriveRow(tenant, ev, now)
		if err != nil {
			return domain.IngestResult{}, perr.WithField(
				perr.InvalidEventDataf("event %d: %v", i, err), "events")
		}
		rows = append(rows, row)
	}

	var processed int64
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		processed, err = s.binder.Bind(q).BulkInsert(ctx, rows)
		return err
	})
	if err != nil {
		return domain.IngestResult{}, perr.DBBulkInsertFailedf("bulk insert logs: %v", err)
	}

	if s.maintainer != nil {
		s.maintainer.MaybeTrigger(context.WithoutCancel(ctx))
	}

	return domain.IngestResult{
		Received:  len(events),
		Processed: int(processed),
		RequestID: uuid.NewString(),
	}, nil
}

// Query implements domain.Port
func (s *Svc) Query(ctx context.Context, tenant tdom.Tenant, f domain.Filter) ([]domain.StoredLog, error) {
	if f.Limit <= 0 || f.Limit > s.cfg.MaxQueryLimit {
		f.Limit = s.cfg.MaxQueryLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var out []domain.StoredLog
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.binder.Bind(q).Query(ctx, tenant.ID, f)
		return err
	})
	if err != nil {
		return nil, perr.DBQueryFailedf("query logs: %v", err)
	}
	return out, nil
}

// deriveRow applies the per-event derivation rules in §4.5
func deriveRow(tenant tdom.Tenant, ev domain.LogEvent, now time.Time) (domain.StoredLog, error) {
	tsEffective := now
	if ev.TS != nil {
		tsEffective = *ev.TS
	}

	// src is the stored/effective source, falling back to the tenant slug.
	// The fingerprint, below, hashes the raw ev.Source instead: an absent
	// source must contribute the empty string, not the tenant's slug (§4.5)
	src := ev.Source
	if src == "" {
		src = tenant.Slug
	}
	env := ev.Env
	if env == "" {
		env = "production"
	}

	var ctxJSON *string
	var stack string
	if ev.Ctx != nil {
		b, err := json.Marshal(ev.Ctx)
		if err != nil {
			return domain.StoredLog{}, err
		}
		s := string(b)
		ctxJSON = &s
		if v, ok := ev.Ctx["stack"].(string); ok {
			stack = v
		}
	}

	return domain.StoredLog{
		ProjectID:   tenant.ID,
		TS:          tsEffective,
		Level:       ev.Level,
		Message:     pstrings.Truncate(ev.Message, 1024),
		Source:      pstrings.Truncate(src, 64),
		Env:         pstrings.Truncate(env, 32),
		CtxJSON:     ctxJSON,
		UserID:      pstrings.Truncate(ev.UserID, 64),
		RequestID:   pstrings.Truncate(ev.RequestID, 64),
		Tags:        pstrings.Truncate(ev.Tags, 128),
		Fingerprint: fingerprint(ev.Message, ev.Source, stack),
		DayID:       ptime.DayID(now),
		CreatedAt:   now,
	}, nil
}

// fingerprint is the first 16 hex chars of SHA-1("<message>|<source?>|<stack?>")
func fingerprint(message, source, stack string) string {
	h := sha1.New() //nolint:gosec
	h.Write([]byte(message))
	h.Write([]byte("|"))
	h.Write([]byte(source))
	h.Write([]byte("|"))
	h.Write([]byte(stack))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)[:16]
}
