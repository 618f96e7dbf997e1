package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overflowd/internal/modkit/repokit"
	"overflowd/internal/platform/store"
	ptime "overflowd/internal/platform/time"
	"overflowd/internal/services/ingest/domain"
	tdom "overflowd/internal/services/tenant/domain"
)

type fakeTxRunner struct{}

func (fakeTxRunner) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (fakeTxRunner) Query(context.Context, string, ...any) (store.Rows, error)       { return nil, nil }
func (fakeTxRunner) QueryRow(context.Context, string, ...any) store.Row              { return nil }
func (fakeTxRunner) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(nil)
}

type fakeRepo struct {
	inserted []domain.StoredLog
	rows     []domain.StoredLog
	err      error
}

func (f *fakeRepo) BulkInsert(_ context.Context, rows []domain.StoredLog) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = rows
	return int64(len(rows)), nil
}

func (f *fakeRepo) Query(_ context.Context, _ int64, _ domain.Filter) ([]domain.StoredLog, error) {
	return f.rows, f.err
}

type fakeTrigger struct{ calls int }

func (f *fakeTrigger) MaybeTrigger(context.Context) { f.calls++ }

func newSvc(repo *fakeRepo, cfg Config, trig domain.MaintenanceTrigger) *Svc {
	return New(fakeTxRunner{}, repokit.BindFunc[domain.Repo](func(repokit.Queryer) domain.Repo { return repo }), cfg, trig)
}

func TestIngest_RejectsEmptyBatch(t *testing.T) {
	svc := newSvc(&fakeRepo{}, Config{}, nil)
	_, err := svc.Ingest(context.Background(), tdom.Tenant{ID: 1}, nil)
	require.Error(t, err)
}

func TestIngest_RejectsOversizedBatch(t *testing.T) {
	svc := newSvc(&fakeRepo{}, Config{MaxEventsPerPost: 2}, nil)
	events := []domain.LogEvent{
		{Level: "info", Message: "a"},
		{Level: "info", Message: "b"},
		{Level: "info", Message: "c"},
	}
	_, err := svc.Ingest(context.Background(), tdom.Tenant{ID: 1}, events)
	require.Error(t, err)
}

func TestIngest_DerivesAndTriggersMaintenance(t *testing.T) {
	repo := &fakeRepo{}
	trig := &fakeTrigger{}
	svc := newSvc(repo, Config{MaxEventsPerPost: 10}, trig)

	tenant := tdom.Tenant{ID: 7, Slug: "acme"}
	res, err := svc.Ingest(context.Background(), tenant, []domain.LogEvent{
		{Level: "error", Message: "boom"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Received)
	assert.Equal(t, 1, res.Processed)
	assert.NotEmpty(t, res.RequestID)

	require.Len(t, repo.inserted, 1)
	row := repo.inserted[0]
	assert.Equal(t, int64(7), row.ProjectID)
	assert.Equal(t, "acme", row.Source) // stored source falls back to tenant slug
	assert.Equal(t, "production", row.Env)
	assert.Equal(t, ptime.DayID(row.CreatedAt), row.DayID)

	// scenario 1 (SPEC_FULL.md): an absent event source must still
	// fingerprint as an empty field, not the tenant-slug fallback used for
	// the stored Source column
	assert.Equal(t, fingerprint("boom", "", ""), row.Fingerprint)
	assert.Equal(t, "617ce91e3b301630", row.Fingerprint)

	assert.Equal(t, 1, trig.calls)
}

func TestIngest_NilTriggerIsNoOp(t *testing.T) {
	svc := newSvc(&fakeRepo{}, Config{MaxEventsPerPost: 10}, nil)
	_, err := svc.Ingest(context.Background(), tdom.Tenant{ID: 1}, []domain.LogEvent{
		{Level: "info", Message: "hi"},
	})
	require.NoError(t, err)
}

func TestQuery_ClampsLimitAndOffset(t *testing.T) {
	repo := &fakeRepo{rows: []domain.StoredLog{{ID: 1}}}
	svc := newSvc(repo, Config{MaxQueryLimit: 50}, nil)

	out, err := svc.Query(context.Background(), tdom.Tenant{ID: 1}, domain.Filter{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestDeriveRow_UsesClientTimestampWhenProvided(t *testing.T) {
	now := time.Now()
	clientTS := now.Add(-time.Hour)
	row, err := deriveRow(tdom.Tenant{ID: 1, Slug: "acme"}, domain.LogEvent{
		Level:   "warn",
		Message: "disk almost full",
		TS:      &clientTS,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, clientTS, row.TS)
	assert.Equal(t, ptime.DayID(now), row.DayID) // day_id is server-derived, not client ts (§9 open question)
}

func TestFingerprint_StableAndDistinguishesInputs(t *testing.T) {
	a := fingerprint("msg", "src", "stack")
	b := fingerprint("msg", "src", "stack")
	c := fingerprint("msg2", "src", "stack")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestFingerprint_AbsentSourceContributesEmptyString(t *testing.T) {
	withSource := fingerprint("boom", "acme", "")
	withoutSource := fingerprint("boom", "", "")

	assert.NotEqual(t, withSource, withoutSource)
	assert.Equal(t, "617ce91e3b301630", withoutSource)
}
