// Package domain defines the core interfaces for the authenticator (C5)
package domain

import (
	"context"

	tdom "overflowd/internal/services/tenant/domain"
)

// Port is the public surface the authenticator exposes to HTTP middleware
type Port interface {
	// VerifyAPI resolves and returns the tenant for a project-key/signature
	// pair, verifying the HMAC over signedMaterial. apiKey/signatureHex come
	// from X-Project-Key/X-Signature; signedMaterial is the raw request body
	// (mutating methods) or the raw query string (GET)
	VerifyAPI(ctx context.Context, apiKey, signatureHex string, signedMaterial []byte) (tdom.Tenant, error)

	// VerifyAdmin checks an X-Admin-Token value with constant-time equality
	VerifyAdmin(token string) error
}
