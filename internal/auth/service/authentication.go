package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/notify"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/gatekit/gatekit/pkg/cryptox"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// Config names every collaborator the Service needs. All fields are
// required; NewService rejects a partially filled config instead of
// substituting defaults.
type Config struct {
	Store        store.Store
	Notifier     notify.Sender
	Clock        clockx.Clock
	TTL          TTLPolicy
	SecretLength int
}

// Service orchestrates registration, authentication of all claim kinds,
// token pair issuance with refresh rotation, email verification and
// password reset.
type Service struct {
	store    store.Store
	notifier notify.Sender
	clock    clockx.Clock

	users   *UserAuthenticator
	tokens  *TokenAuthenticator
	creator *TokenCreator
	encoder TokenEncoder
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("service config: Store is required")
	}
	if cfg.Notifier == nil {
		return nil, errors.New("service config: Notifier is required")
	}
	if cfg.Clock == nil {
		return nil, errors.New("service config: Clock is required")
	}

	return &Service{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		users:    &UserAuthenticator{Store: cfg.Store},
		tokens:   &TokenAuthenticator{Store: cfg.Store, Clock: cfg.Clock},
		creator: &TokenCreator{
			Clock:        cfg.Clock,
			TTL:          cfg.TTL,
			SecretLength: cfg.SecretLength,
		},
	}, nil
}

// Register creates a principal, mints its verification token and sends
// the verification notification. A delivery failure is returned as
// ErrNotificationFailed alongside a successful response; the account and
// token exist either way.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashSecret(req.Password)
	if err != nil {
		return domain.RegisterResponse{Message: "registration failed"}, fmt.Errorf("hash password: %w", err)
	}

	principal, err := s.store.Principals().Create(ctx, domain.Principal{
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
		UpdatedAt:    s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.RegisterResponse{Message: "username already taken"}, err
		}
		return domain.RegisterResponse{Message: "registration failed"}, fmt.Errorf("create principal: %w", err)
	}

	encoded, err := s.issueToken(ctx, domain.KindVerify, principal)
	if err != nil {
		return domain.RegisterResponse{Message: "registration failed"}, err
	}

	resp := domain.RegisterResponse{
		Success:      true,
		Message:      "registered",
		EncodedToken: encoded,
	}

	notification := domain.Notification{
		Principal:    principal,
		Action:       domain.KindVerify,
		EncodedToken: encoded,
	}
	if err := s.notifier.Send(ctx, notification); err != nil {
		l.Error("verification notification failed", slog.Any("error", err), slog.String("username", principal.Username))
		return resp, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	l.Info("principal registered", slog.String("username", principal.Username))
	return resp, nil
}

// AuthenticatePassword verifies a username/password claim.
func (s *Service) AuthenticatePassword(ctx context.Context, claim domain.PasswordClaim) (domain.SecurityContext, error) {
	return s.users.Authenticate(ctx, claim)
}

// AuthenticateAccessToken verifies an encoded access token.
func (s *Service) AuthenticateAccessToken(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return s.tokens.AuthenticateAccess(ctx, encoded)
}

// AuthenticateRefreshToken verifies an encoded refresh token without
// consuming it; rotation happens in RefreshTokenPair.
func (s *Service) AuthenticateRefreshToken(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return s.tokens.AuthenticateRefresh(ctx, encoded)
}

// AuthenticateVerifyToken verifies an encoded verification token and
// consumes it on success, so a second presentation fails.
func (s *Service) AuthenticateVerifyToken(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return s.authenticateSingleUse(ctx, s.tokens.AuthenticateVerify, encoded)
}

// AuthenticateResetToken verifies an encoded password reset token and
// consumes it on success.
func (s *Service) AuthenticateResetToken(ctx context.Context, encoded string) (domain.SecurityContext, error) {
	return s.authenticateSingleUse(ctx, s.tokens.AuthenticateReset, encoded)
}

func (s *Service) authenticateSingleUse(
	ctx context.Context,
	authenticate func(context.Context, string) (domain.SecurityContext, error),
	encoded string,
) (domain.SecurityContext, error) {
	sec, err := authenticate(ctx, encoded)
	if err != nil || !sec.Authenticated {
		return sec, err
	}

	if err := s.store.Tokens().Delete(ctx, sec.Token.Key); err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.Unauthenticated(sec.Claim), fmt.Errorf("consume token: %w", err)
	}
	return sec, nil
}

// IssueTokenPair mints and persists an access and refresh token for the
// principal and returns their encoded forms.
func (s *Service) IssueTokenPair(ctx context.Context, principal domain.Principal) (domain.TokenPair, error) {
	access, err := s.issueToken(ctx, domain.KindAccess, principal)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.issueToken(ctx, domain.KindRefresh, principal)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.creator.TTL.For(domain.KindAccess),
	}, nil
}

// RefreshTokenPair issues a fresh pair for the principal behind an
// authenticated refresh token record, then deletes that record. The old
// refresh token stops working once the new pair exists.
func (s *Service) RefreshTokenPair(ctx context.Context, record domain.TokenRecord) (domain.TokenPair, error) {
	pair, err := s.IssueTokenPair(ctx, record.Principal)
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.store.Tokens().Delete(ctx, record.Key); err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}
	return pair, nil
}

// MarkVerified flips the principal's verified flag.
func (s *Service) MarkVerified(ctx context.Context, principal domain.Principal) (domain.Principal, error) {
	principal.Verified = true
	principal.UpdatedAt = s.clock.Now()

	updated, err := s.store.Principals().Update(ctx, principal)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrPrincipalNotFound
		}
		return domain.Principal{}, fmt.Errorf("mark verified: %w", err)
	}

	slogx.FromContext(ctx).Info("principal verified", slog.String("username", updated.Username))
	return updated, nil
}

// RequestPasswordReset mints a reset token for the named principal and
// sends the reset notification. An unknown username yields a plain
// unsuccessful response with no token and no notification; the success
// flag is the only signal, the message stays generic.
func (s *Service) RequestPasswordReset(ctx context.Context, req domain.ResetRequest) (domain.ResetResponse, error) {
	l := slogx.FromContext(ctx)

	principal, err := s.store.Principals().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("reset requested for unknown username", slog.String("username", req.Username))
			return domain.ResetResponse{Message: "reset request failed"}, nil
		}
		return domain.ResetResponse{Message: "reset request failed"}, fmt.Errorf("lookup principal: %w", err)
	}

	accepted := domain.ResetResponse{
		Success: true,
		Message: "reset link sent",
	}

	encoded, err := s.issueToken(ctx, domain.KindReset, principal)
	if err != nil {
		return domain.ResetResponse{Message: "reset request failed"}, err
	}
	accepted.EncodedToken = encoded

	notification := domain.Notification{
		Principal:    principal,
		Action:       domain.KindReset,
		EncodedToken: encoded,
		Origin:       req.Origin,
	}
	if err := s.notifier.Send(ctx, notification); err != nil {
		l.Error("reset notification failed", slog.Any("error", err), slog.String("username", principal.Username))
		return accepted, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	l.Info("password reset requested", slog.String("username", principal.Username))
	return accepted, nil
}

// ResetPassword replaces the principal's password hash and revokes every
// outstanding refresh token, forcing existing sessions to log in again.
func (s *Service) ResetPassword(ctx context.Context, principal domain.Principal, newPassword string) (domain.Principal, error) {
	hash, err := cryptox.HashSecret(newPassword)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("hash password: %w", err)
	}

	principal.PasswordHash = hash
	principal.UpdatedAt = s.clock.Now()

	updated, err := s.store.Principals().Update(ctx, principal)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrPrincipalNotFound
		}
		return domain.Principal{}, fmt.Errorf("update password: %w", err)
	}

	if err := s.store.Tokens().DeletePrincipalTokens(ctx, updated.ID, domain.KindRefresh); err != nil {
		return domain.Principal{}, fmt.Errorf("revoke refresh tokens: %w", err)
	}

	slogx.FromContext(ctx).Info("password reset", slog.String("username", updated.Username))
	return updated, nil
}

// Revoke deletes the token behind an encoded refresh token. Revoking a
// token that is already gone is not an error.
func (s *Service) Revoke(ctx context.Context, encoded string) error {
	info, err := s.encoder.Decode(encoded)
	if err != nil {
		return err
	}

	if err := s.store.Tokens().Delete(ctx, info.Key); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// issueToken mints, persists and encodes one token of the given kind.
func (s *Service) issueToken(ctx context.Context, kind domain.Kind, principal domain.Principal) (string, error) {
	issued, err := s.creator.Create(kind, principal)
	if err != nil {
		return "", err
	}

	saved, err := s.store.Tokens().Save(ctx, issued.Record)
	if err != nil {
		return "", fmt.Errorf("save %s token: %w", kind, err)
	}

	info := issued.Info()
	info.Key = saved.Key
	return s.encoder.Encode(info), nil
}
