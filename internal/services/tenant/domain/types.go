// Package domain defines the core types and interfaces for the tenant registry
package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Tenant is a registered API client (a.k.a. project)
type Tenant struct {
	ID            int64
	Slug          string
	Name          string
	APIKeyHash    string // hex SHA-256 of the plaintext key; the key itself is never stored
	RetentionDays int
	MinuteCap     int
	SamplePolicy  []byte // opaque JSON, nil when unset
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repo is the storage contract the tenant registry binds against
type Repo interface {
	// FindByAPIKeyHash looks up a tenant by the hex SHA-256 of its plaintext key.
	// Returns perr.ErrorCodeProjectNotFound when no row matches.
	FindByAPIKeyHash(ctx context.Context, hash string) (Tenant, error)

	// Insert creates a new tenant row and returns it with its assigned id
	Insert(ctx context.Context, t Tenant) (Tenant, error)

	// ListActive returns every tenant, for the maintenance scheduler's
	// per-tenant retention purge (§4.6)
	ListActive(ctx context.Context) ([]Tenant, error)
}

// Lister is the narrow surface the maintenance scheduler consumes: it never
// needs a full RegistryPort, only the set of tenants and their retention
type Lister interface {
	ListActive(ctx context.Context) ([]Tenant, error)
}

// RegistryPort is the public surface other modules consume
type RegistryPort interface {
	// Lookup resolves a tenant by the hex SHA-256 of its plaintext API key.
	// Bounded by a configurable timeout; a timeout surfaces as a database
	// error distinct from "not found"
	Lookup(ctx context.Context, apiKeyHash string) (Tenant, error)

	// Provision creates a tenant and returns it along with the one-time
	// plaintext key (never recoverable afterwards)
	Provision(ctx context.Context, slug, name string, retentionDays, minuteCap int) (Tenant, string, error)
}

// HashAPIKey returns the hex SHA-256 of a plaintext API key. Shared by the
// registry's Provision/FindByAPIKeyHash and the authenticator, which must
// derive the same hash from the X-Project-Key header to look a tenant up
func HashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
