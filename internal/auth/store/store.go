package store

import (
	"context"
	"errors"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (memory, sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable; drivers are expected to provide their own internal concurrency
// safety (atomic upsert on token key, unique username enforcement).
type Store interface {
	Principals() Principals
	Tokens() Tokens

	// ApplyMigrations brings the schema up to date. In-memory drivers no-op.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is still reachable.
	Ping(ctx context.Context) error
}

type Principals interface {
	// GetByUsername resolves the unique username to a principal.
	GetByUsername(ctx context.Context, username string) (domain.Principal, error)

	// Create inserts a new principal. Fails with ErrAlreadyExists when the
	// username is taken. Returns the stored record (ids and timestamps set).
	Create(ctx context.Context, p domain.Principal) (domain.Principal, error)

	// Update rewrites the mutable fields (password hash, verified flag) and
	// bumps updated_at. Fails with ErrNotFound for unknown principals.
	Update(ctx context.Context, p domain.Principal) (domain.Principal, error)
}

type Tokens interface {
	// GetByKey returns the token record for a lookup key. The record carries
	// its principal so authentication needs exactly one store call.
	GetByKey(ctx context.Context, key string) (domain.TokenRecord, error)

	// Save persists a new token record. The creator may propose a key; the
	// store is authoritative and assigns one when the proposal is empty or
	// taken. The returned record carries the final key.
	Save(ctx context.Context, t domain.TokenRecord) (domain.TokenRecord, error)

	// Delete invalidates a token by key: single-use consumption, refresh
	// rotation and logout all end here. Deleting an absent key returns
	// ErrNotFound.
	Delete(ctx context.Context, key string) error

	// DeletePrincipalTokens invalidates every token of the given kind held
	// by a principal (e.g. all refresh tokens after a password reset).
	DeletePrincipalTokens(ctx context.Context, principalID string, kind domain.Kind) error

	// DeleteExpired removes records whose expiry is at or before now.
	// Housekeeping; authentication never depends on it.
	DeleteExpired(ctx context.Context, now time.Time) error
}
