// Package service implements the authenticator (C5): signed-batch project
// auth and admin-token auth, both compared in constant time
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	tdom "overflowd/internal/services/tenant/domain"

	perr "overflowd/internal/platform/errors"
)

// Config carries the two shared secrets the authenticator compares against
type Config struct {
	HMACSecret []byte
	AdminToken []byte
}

// Svc implements domain.Port
type Svc struct {
	tenants tdom.RegistryPort
	cfg     Config
}

// New constructs the authenticator service
func New(tenants tdom.RegistryPort, cfg Config) *Svc {
	if tenants == nil {
		panic("auth.Service requires a non-nil tenant registry")
	}
	return &Svc{tenants: tenants, cfg: cfg}
}

// VerifyAPI implements domain.Port
func (s *Svc) VerifyAPI(ctx context.Context, apiKey, signatureHex string, signedMaterial []byte) (tdom.Tenant, error) {
	if apiKey == "" {
		return tdom.Tenant{}, perr.ProjectKeyMissingf("missing X-Project-Key")
	}
	if signatureHex == "" {
		return tdom.Tenant{}, perr.SignatureMissingf("missing X-Signature")
	}

	tenant, err := s.tenants.Lookup(ctx, tdom.HashAPIKey(apiKey))
	if err != nil {
		return tdom.Tenant{}, err
	}

	if !s.validSignature(signatureHex, signedMaterial) {
		return tdom.Tenant{}, perr.SignatureInvalidf("signature mismatch")
	}

	return tenant, nil
}

// VerifyAdmin implements domain.Port
func (s *Svc) VerifyAdmin(token string) error {
	if token == "" {
		return perr.AdminTokenMissingf("missing X-Admin-Token")
	}
	if len(s.cfg.AdminToken) == 0 || subtle.ConstantTimeCompare([]byte(token), s.cfg.AdminToken) != 1 {
		return perr.AdminTokenInvalidf("admin token mismatch")
	}
	return nil
}

// validSignature recomputes HMAC-SHA-256(signedMaterial, secret) and
// compares it to the supplied hex signature in constant time
func (s *Svc) validSignature(signatureHex string, signedMaterial []byte) bool {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, s.cfg.HMACSecret)
	mac.Write(signedMaterial)
	expected := mac.Sum(nil)
	return subtle.ConstantTimeCompare(sig, expected) == 1
}
