package http

import (
	"context"
	"net/http"

	tdom "overflowd/internal/services/tenant/domain"
)

type ctxKey int

const tenantCtxKey ctxKey = iota

// withTenant attaches the resolved tenant to the request context
func withTenant(r *http.Request, t tdom.Tenant) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), tenantCtxKey, t))
}

// tenantFrom recovers the tenant attached by the auth middleware
func tenantFrom(r *http.Request) (tdom.Tenant, bool) {
	t, ok := r.Context().Value(tenantCtxKey).(tdom.Tenant)
	return t, ok
}
