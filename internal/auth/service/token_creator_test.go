package service_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/gatekit/gatekit/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// stubClock is a mutable clock for tests that need time to move.
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock(at time.Time) *stubClock { return &stubClock{now: at} }

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTokenCreatorMintsPerKind(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	creator := &service.TokenCreator{
		Clock: clockx.Fixed{At: now},
		TTL: service.TTLPolicy{
			Access:  15 * time.Minute,
			Refresh: 7 * 24 * time.Hour,
			Verify:  24 * time.Hour,
			Reset:   time.Hour,
		},
	}
	principal := domain.Principal{ID: "p1", Username: "alice@test.com"}

	cases := map[domain.Kind]time.Duration{
		domain.KindAccess:  15 * time.Minute,
		domain.KindRefresh: 7 * 24 * time.Hour,
		domain.KindVerify:  24 * time.Hour,
		domain.KindReset:   time.Hour,
	}

	for kind, ttl := range cases {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()
			issued, err := creator.Create(kind, principal)
			require.NoError(t, err)

			require.Equal(t, kind, issued.Record.Kind)
			require.Equal(t, principal.ID, issued.Record.Principal.ID)
			require.Equal(t, now, issued.Record.CreatedAt)
			require.Equal(t, now.Add(ttl), issued.Record.ExpiresAt)
			require.NotEmpty(t, issued.Record.Key)

			require.Len(t, issued.Secret, service.DefaultSecretLength)
			require.NotContains(t, issued.Secret, service.TokenSeparator)
			require.True(t, cryptox.VerifySecret(issued.Secret, issued.Record.SecretHash))
		})
	}
}

func TestTokenCreatorPlaintextStaysOffTheRecord(t *testing.T) {
	t.Parallel()

	creator := &service.TokenCreator{Clock: clockx.System{}, TTL: service.DefaultTTLPolicy()}
	issued, err := creator.Create(domain.KindAccess, domain.Principal{ID: "p1"})
	require.NoError(t, err)

	require.NotEqual(t, issued.Secret, issued.Record.SecretHash)
	require.False(t, strings.Contains(issued.Record.SecretHash, issued.Secret))
}

func TestTokenCreatorRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	creator := &service.TokenCreator{Clock: clockx.System{}, TTL: service.DefaultTTLPolicy()}
	_, err := creator.Create(domain.Kind("session"), domain.Principal{})
	require.Error(t, err)
}

func TestTokenCreatorKeysAreUnique(t *testing.T) {
	t.Parallel()

	creator := &service.TokenCreator{Clock: clockx.System{}, TTL: service.DefaultTTLPolicy()}
	seen := map[string]struct{}{}
	for range 100 {
		issued, err := creator.Create(domain.KindAccess, domain.Principal{})
		require.NoError(t, err)
		_, dup := seen[issued.Record.Key]
		require.False(t, dup, "duplicate key %s", issued.Record.Key)
		seen[issued.Record.Key] = struct{}{}
	}
}
