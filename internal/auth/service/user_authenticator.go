package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/cryptox"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// UserAuthenticator verifies password claims against stored principals.
// All failure modes collapse into a single unauthenticated result so
// callers cannot distinguish an unknown username from a bad password.
type UserAuthenticator struct {
	Store store.Store
}

func (a *UserAuthenticator) Authenticate(ctx context.Context, claim domain.PasswordClaim) (domain.SecurityContext, error) {
	l := slogx.FromContext(ctx)

	principal, err := a.Store.Principals().GetByUsername(ctx, claim.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password authentication failed", slog.String("username", claim.Username))
			return domain.Unauthenticated(claim), nil
		}
		return domain.Unauthenticated(claim), err
	}

	if !cryptox.VerifySecret(claim.Password, principal.PasswordHash) {
		l.Info("password authentication failed", slog.String("username", claim.Username))
		return domain.Unauthenticated(claim), nil
	}

	return domain.SecurityContext{
		Authenticated: true,
		Claim:         claim,
		Principal:     &principal,
	}, nil
}
