package service

import (
	"fmt"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/gatekit/gatekit/pkg/cryptox"
	"github.com/gatekit/gatekit/pkg/idx"
)

// DefaultSecretLength matches the length of generated token secrets.
const DefaultSecretLength = 30

// TTLPolicy holds the lifetime for each token kind.
type TTLPolicy struct {
	Access  time.Duration
	Refresh time.Duration
	Verify  time.Duration
	Reset   time.Duration
}

// DefaultTTLPolicy returns sensible lifetimes for all four kinds.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Access:  15 * time.Minute,
		Refresh: 7 * 24 * time.Hour,
		Verify:  24 * time.Hour,
		Reset:   time.Hour,
	}
}

func (p TTLPolicy) For(kind domain.Kind) time.Duration {
	switch kind {
	case domain.KindAccess:
		return p.Access
	case domain.KindRefresh:
		return p.Refresh
	case domain.KindVerify:
		return p.Verify
	case domain.KindReset:
		return p.Reset
	default:
		return 0
	}
}

// TokenCreator mints unsaved tokens: a fresh ULID key, a random secret,
// its argon2 hash, and an expiry derived from the per-kind TTL policy.
// The plaintext secret only ever lives on the returned IssuedToken.
type TokenCreator struct {
	Clock        clockx.Clock
	TTL          TTLPolicy
	SecretLength int
}

func (c *TokenCreator) Create(kind domain.Kind, principal domain.Principal) (domain.IssuedToken, error) {
	if !kind.Valid() {
		return domain.IssuedToken{}, fmt.Errorf("unknown token kind %q", kind)
	}

	length := c.SecretLength
	if length <= 0 {
		length = DefaultSecretLength
	}

	secret, err := cryptox.GenerateString(length)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("generate token secret: %w", err)
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("hash token secret: %w", err)
	}

	now := c.Clock.Now()
	return domain.IssuedToken{
		Record: domain.TokenRecord{
			Key:        idx.New().String(),
			SecretHash: hash,
			Kind:       kind,
			Principal:  principal,
			CreatedAt:  now,
			ExpiresAt:  now.Add(c.TTL.For(kind)),
		},
		Secret: secret,
	}, nil
}
