// Package memory is an in-memory Store driver. It backs the demo binary and
// most of the test suite; nothing here survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/idx"
)

type Store struct {
	mu         sync.RWMutex
	principals map[string]domain.Principal // keyed by username
	tokens     map[string]tokenRow         // keyed by token key
}

// tokenRow holds the persisted projection plus the owning username so reads
// can re-join the live principal record.
type tokenRow struct {
	rec      domain.TokenRecord
	username string
}

func New() *Store {
	return &Store{
		principals: make(map[string]domain.Principal),
		tokens:     make(map[string]tokenRow),
	}
}

func (s *Store) Principals() store.Principals { return &principalsRepo{s} }
func (s *Store) Tokens() store.Tokens         { return &tokensRepo{s} }

func (s *Store) ApplyMigrations() error { return nil }
func (s *Store) Close() error           { return nil }

func (s *Store) Ping(context.Context) error { return nil }

type principalsRepo struct {
	s *Store
}

func (r *principalsRepo) GetByUsername(_ context.Context, username string) (domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.principals[username]
	if !ok {
		return domain.Principal{}, store.ErrNotFound
	}
	return p, nil
}

func (r *principalsRepo) Create(_ context.Context, p domain.Principal) (domain.Principal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.principals[p.Username]; ok {
		return domain.Principal{}, store.ErrAlreadyExists
	}

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = idx.New().String()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	r.s.principals[p.Username] = p
	return p, nil
}

func (r *principalsRepo) Update(_ context.Context, p domain.Principal) (domain.Principal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.principals[p.Username]
	if !ok {
		return domain.Principal{}, store.ErrNotFound
	}

	stored.PasswordHash = p.PasswordHash
	stored.Verified = p.Verified
	stored.UpdatedAt = time.Now().UTC()

	r.s.principals[p.Username] = stored
	return stored, nil
}

type tokensRepo struct {
	s *Store
}

func (r *tokensRepo) GetByKey(_ context.Context, key string) (domain.TokenRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.tokens[key]
	if !ok {
		return domain.TokenRecord{}, store.ErrNotFound
	}

	principal, ok := r.s.principals[row.username]
	if !ok {
		// Principal deleted out from under its tokens; treat as gone.
		return domain.TokenRecord{}, store.ErrNotFound
	}

	rec := row.rec
	rec.Principal = principal
	return rec, nil
}

func (r *tokensRepo) Save(_ context.Context, t domain.TokenRecord) (domain.TokenRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// The store has the final say on keys: assign one when the proposal is
	// missing or collides.
	if t.Key == "" {
		t.Key = idx.New().String()
	}
	if _, taken := r.s.tokens[t.Key]; taken {
		t.Key = idx.New().String()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	r.s.tokens[t.Key] = tokenRow{rec: t, username: t.Principal.Username}
	return t, nil
}

func (r *tokensRepo) Delete(_ context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[key]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.tokens, key)
	return nil
}

func (r *tokensRepo) DeletePrincipalTokens(_ context.Context, principalID string, kind domain.Kind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, row := range r.s.tokens {
		if row.rec.Principal.ID == principalID && row.rec.Kind == kind {
			delete(r.s.tokens, key)
		}
	}
	return nil
}

func (r *tokensRepo) DeleteExpired(_ context.Context, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, row := range r.s.tokens {
		if row.rec.Expired(now) {
			delete(r.s.tokens, key)
		}
	}
	return nil
}
