// Package http provides HTTP transport for the ingestion pipeline and query
// service (C6/C8): POST /log accepts a signed batch, GET /log reads it back
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"overflowd/internal/modkit/httpkit"
	"overflowd/internal/platform/net/http/rawbody"
	"overflowd/internal/services/ingest/domain"
	adom "overflowd/internal/services/auth/domain"
	rldom "overflowd/internal/services/ratelimit/domain"

	perr "overflowd/internal/platform/errors"
)

// Register mounts the ingestion/query routes and their request pipeline:
// raw-body capture -> auth -> rate limit -> handler (§4.3/§4.4 data flow)
func Register(
	r httpkit.Router,
	svc domain.Port,
	maxPayloadBytes int64,
	auth adom.Port,
	limiter rldom.Port,
	perIPCap int,
) {
	r.Use(rawbody.Capture(maxPayloadBytes))
	r.Use(authMiddleware(auth))
	r.Use(rateLimitMiddleware(limiter, perIPCap))

	h := &handlers{svc: svc}
	httpkit.PostJSON[domain.IngestRequest](r, "/log", h.ingest)
	httpkit.Get(r, "/log", h.query)
}

type handlers struct{ svc domain.Port }

func (h *handlers) ingest(r *stdhttp.Request, in domain.IngestRequest) (any, error) {
	tenant, ok := tenantFrom(r)
	if !ok {
		return nil, perr.Internalf("ingest handler ran without a resolved tenant")
	}
	return h.svc.Ingest(r.Context(), tenant, in.Events)
}

func (h *handlers) query(r *stdhttp.Request) (any, error) {
	tenant, ok := tenantFrom(r)
	if !ok {
		return nil, perr.Internalf("query handler ran without a resolved tenant")
	}

	q := r.URL.Query()
	f := domain.Filter{Level: q.Get("level")}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidEventDataf("limit must be a non-negative integer"), "limit")
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidEventDataf("offset must be a non-negative integer"), "offset")
		}
		f.Offset = n
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, perr.WithField(perr.InvalidEventDataf("since must be an RFC-3339 instant"), "since")
		}
		f.Since = &t
	}

	return h.svc.Query(r.Context(), tenant, f)
}
