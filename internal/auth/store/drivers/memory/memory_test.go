package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/internal/auth/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

func TestPrincipals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		s := memory.New()
		created, err := s.Principals().Create(ctx, domain.Principal{
			Username:     "alice@test.com",
			PasswordHash: "$argon2id$...",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.False(t, created.CreatedAt.IsZero())

		got, err := s.Principals().GetByUsername(ctx, "alice@test.com")
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		s := memory.New()
		_, err := s.Principals().Create(ctx, domain.Principal{Username: "bob@test.com"})
		require.NoError(t, err)
		_, err = s.Principals().Create(ctx, domain.Principal{Username: "bob@test.com"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown username is ErrNotFound", func(t *testing.T) {
		s := memory.New()
		_, err := s.Principals().GetByUsername(ctx, "ghost@test.com")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Principals().Update(ctx, domain.Principal{Username: "ghost@test.com"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update rewrites hash and verified flag", func(t *testing.T) {
		s := memory.New()
		created, err := s.Principals().Create(ctx, domain.Principal{
			Username:     "carol@test.com",
			PasswordHash: "old",
		})
		require.NoError(t, err)

		created.PasswordHash = "new"
		created.Verified = true
		updated, err := s.Principals().Update(ctx, created)
		require.NoError(t, err)
		require.Equal(t, "new", updated.PasswordHash)
		require.True(t, updated.Verified)
	})
}

func TestTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func(t *testing.T, s *memory.Store) domain.Principal {
		t.Helper()
		p, err := s.Principals().Create(ctx, domain.Principal{Username: "alice@test.com"})
		require.NoError(t, err)
		return p
	}

	t.Run("save assigns a key when none proposed", func(t *testing.T) {
		s := memory.New()
		p := seed(t, s)

		saved, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:       domain.KindAccess,
			SecretHash: "hash",
			Principal:  p,
			ExpiresAt:  time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		require.NotEmpty(t, saved.Key)

		got, err := s.Tokens().GetByKey(ctx, saved.Key)
		require.NoError(t, err)
		require.Equal(t, domain.KindAccess, got.Kind)
		require.Equal(t, p.Username, got.Principal.Username)
	})

	t.Run("reads re-join the live principal", func(t *testing.T) {
		s := memory.New()
		p := seed(t, s)

		saved, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:      domain.KindReset,
			Principal: p,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		p.Verified = true
		_, err = s.Principals().Update(ctx, p)
		require.NoError(t, err)

		got, err := s.Tokens().GetByKey(ctx, saved.Key)
		require.NoError(t, err)
		require.True(t, got.Principal.Verified)
	})

	t.Run("delete consumes a token", func(t *testing.T) {
		s := memory.New()
		p := seed(t, s)

		saved, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:      domain.KindVerify,
			Principal: p,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		require.NoError(t, s.Tokens().Delete(ctx, saved.Key))
		_, err = s.Tokens().GetByKey(ctx, saved.Key)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, s.Tokens().Delete(ctx, saved.Key), store.ErrNotFound)
	})

	t.Run("delete by principal and kind", func(t *testing.T) {
		s := memory.New()
		p := seed(t, s)

		refresh, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:      domain.KindRefresh,
			Principal: p,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
		access, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:      domain.KindAccess,
			Principal: p,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		require.NoError(t, s.Tokens().DeletePrincipalTokens(ctx, p.ID, domain.KindRefresh))

		_, err = s.Tokens().GetByKey(ctx, refresh.Key)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Tokens().GetByKey(ctx, access.Key)
		require.NoError(t, err, "other kinds survive")
	})

	t.Run("delete expired", func(t *testing.T) {
		s := memory.New()
		p := seed(t, s)
		now := time.Now().UTC()

		stale, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:      domain.KindAccess,
			Principal: p,
			ExpiresAt: now.Add(-time.Minute),
		})
		require.NoError(t, err)
		fresh, err := s.Tokens().Save(ctx, domain.TokenRecord{
			Kind:      domain.KindAccess,
			Principal: p,
			ExpiresAt: now.Add(time.Hour),
		})
		require.NoError(t, err)

		require.NoError(t, s.Tokens().DeleteExpired(ctx, now))

		_, err = s.Tokens().GetByKey(ctx, stale.Key)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Tokens().GetByKey(ctx, fresh.Key)
		require.NoError(t, err)
	})
}
