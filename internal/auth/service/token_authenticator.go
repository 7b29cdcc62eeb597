package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/gatekit/gatekit/pkg/cryptox"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// TokenAuthenticator verifies encoded token claims of every kind with a
// single routine: decode, one store lookup by key, kind check, expiry
// check, then hash verification. Failures collapse into one generic
// unauthenticated result so the response never reveals which step broke.
type TokenAuthenticator struct {
	Store   store.Store
	Encoder TokenEncoder
	Clock   clockx.Clock
}

// Authenticate verifies a token claim of any kind.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, claim domain.TokenClaim) (domain.SecurityContext, error) {
	l := slogx.FromContext(ctx)

	info, err := a.Encoder.Decode(claim.Encoded)
	if err != nil {
		l.Info("token authentication failed", slog.String("kind", string(claim.Kind)), slog.String("reason", "malformed"))
		return domain.Unauthenticated(claim), nil
	}

	record, err := a.Store.Tokens().GetByKey(ctx, info.Key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("token authentication failed", slog.String("kind", string(claim.Kind)), slog.String("reason", "unknown key"))
			return domain.Unauthenticated(claim), nil
		}
		return domain.Unauthenticated(claim), err
	}

	// Reject kind and expiry mismatches before paying for the hash.
	if record.Kind != claim.Kind {
		l.Info("token authentication failed", slog.String("kind", string(claim.Kind)), slog.String("reason", "kind mismatch"))
		return domain.Unauthenticated(claim), nil
	}
	if record.Expired(a.Clock.Now()) {
		l.Info("token authentication failed", slog.String("kind", string(claim.Kind)), slog.String("reason", "expired"))
		return domain.Unauthenticated(claim), nil
	}

	if !cryptox.VerifySecret(info.Secret, record.SecretHash) {
		l.Info("token authentication failed", slog.String("kind", string(claim.Kind)), slog.String("reason", "secret mismatch"))
		return domain.Unauthenticated(claim), nil
	}

	out := domain.SecurityContext{
		Authenticated: true,
		Claim:         claim,
	}
	if claim.Kind == domain.KindAccess {
		principal := record.Principal
		out.Principal = &principal
	} else {
		out.Token = &record
	}
	return out, nil
}

func (a *TokenAuthenticator) AuthenticateAccess(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return a.Authenticate(ctx, domain.NewAccessTokenClaim(encoded))
}

func (a *TokenAuthenticator) AuthenticateRefresh(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return a.Authenticate(ctx, domain.NewRefreshTokenClaim(encoded))
}

func (a *TokenAuthenticator) AuthenticateVerify(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return a.Authenticate(ctx, domain.NewVerifyClaim(encoded))
}

func (a *TokenAuthenticator) AuthenticateReset(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return a.Authenticate(ctx, domain.NewPasswordResetClaim(encoded))
}
