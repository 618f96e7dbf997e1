// Package rawbody captures request bodies verbatim before any JSON parsing
// so an HMAC signature can be verified over exactly the bytes the client sent.
//
// Generalizes the one-byte-peek/io.MultiReader technique bind.ParseJSON uses
// to detect empty bodies without consuming the stream, widened here to buffer
// the whole body so a downstream authenticator can read it and a downstream
// JSON decoder can still read it afterwards
package rawbody

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	perr "overflowd/internal/platform/errors"
)

type ctxKey uint8

const rawBodyKey ctxKey = iota

// Capture reads the full request body (bounded by maxBytes) into memory,
// stashes it on the request context, and rewinds r.Body so later handlers
// (JSON decoders, validators) can still consume it normally.
// GET/HEAD/OPTIONS requests are passed through untouched: their signed
// material is the URL query string, not a body (see SignedMaterial)
func Capture(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if r.Body == nil {
				ctx := context.WithValue(r.Context(), rawBodyKey, []byte{})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			limited := r.Body
			if maxBytes > 0 {
				limited = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			raw, err := io.ReadAll(limited)
			if err != nil {
				writeErr(w, r, perr.TooManyEventsf("request body exceeds the maximum payload size"))
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(raw))

			ctx := context.WithValue(r.Context(), rawBodyKey, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the raw bytes captured for a mutating request, or nil
// if Capture never ran (e.g. a GET)
func FromContext(r *http.Request) []byte {
	b, _ := r.Context().Value(rawBodyKey).([]byte)
	return b
}

// SignedMaterial returns the bytes the authenticator must HMAC: the captured
// raw body for mutating methods, or the URL query string (without the '?')
// for GET, per the spec's "raw body or query string" authenticator contract
func SignedMaterial(r *http.Request) []byte {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return []byte(r.URL.RawQuery)
	default:
		return FromContext(r)
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, wire := perr.HTTP(err, "")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if b, jerr := json.Marshal(wire); jerr == nil {
		_, _ = w.Write(b)
	} else {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"INTERNAL_ERROR"}`))
	}
}
