package http

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"overflowd/internal/platform/net/http/rawbody"
	adom "overflowd/internal/services/auth/domain"
	rldom "overflowd/internal/services/ratelimit/domain"

	perr "overflowd/internal/platform/errors"
	phttp "overflowd/internal/platform/net/http"
)

// authMiddleware resolves and attaches the tenant for API-mode requests
// (§4.3). It must run after rawbody.Capture so SignedMaterial is available
func authMiddleware(auth adom.Port) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-Project-Key")
			sig := r.Header.Get("X-Signature")

			tenant, err := auth.VerifyAPI(r.Context(), apiKey, sig, rawbody.SignedMaterial(r))
			if err != nil {
				phttp.RespondError(w, r, err)
				return
			}
			next.ServeHTTP(w, withTenant(r, tenant))
		})
	}
}

// rateLimitMiddleware evaluates both tiers after auth has resolved the
// tenant (§4.4 data flow: auth → limit). perIPCap is the global address-tier
// cap; the tenant-tier cap comes from the resolved tenant's own MinuteCap
func rateLimitMiddleware(limiter rldom.Port, perIPCap int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, ok := tenantFrom(r)
			if !ok {
				phttp.RespondError(w, r, perr.Internalf("rate limit middleware ran before auth"))
				return
			}

			addrKey := r.RemoteAddr
			if host, _, err := net.SplitHostPort(addrKey); err == nil {
				addrKey = host
			}
			addrDecision, err := limiter.Check(r.Context(), rldom.KindAddress, addrKey, perIPCap)
			if err != nil {
				phttp.RespondError(w, r, perr.DatabaseErrorf("address rate limit check: %v", err))
				return
			}
			setRateLimitHeaders(w, "address", addrDecision)
			if !addrDecision.Allowed {
				w.Header().Set("Retry-After", "60")
				phttp.RespondError(w, r, perr.IPRateLimitExceededf("address rate limit exceeded"))
				return
			}

			tenantKey := strconv.FormatInt(tenant.ID, 10)
			tenantDecision, err := limiter.Check(r.Context(), rldom.KindTenant, tenantKey, tenant.MinuteCap)
			if err != nil {
				phttp.RespondError(w, r, perr.DatabaseErrorf("tenant rate limit check: %v", err))
				return
			}
			setRateLimitHeaders(w, "tenant", tenantDecision)
			if !tenantDecision.Allowed {
				w.Header().Set("Retry-After", "60")
				phttp.RespondError(w, r, perr.ProjectRateLimitExceededf("tenant rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, tier string, d rldom.Decision) {
	w.Header().Set(fmt.Sprintf("X-RateLimit-Limit-%s", tier), strconv.Itoa(d.Limit))
	w.Header().Set(fmt.Sprintf("X-RateLimit-Remaining-%s", tier), strconv.Itoa(d.Remaining))
	w.Header().Set(fmt.Sprintf("X-RateLimit-Reset-%s", tier), strconv.FormatInt(d.ResetUnix, 10))
}
