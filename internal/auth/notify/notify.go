// Package notify delivers action notifications to principals, such as
// the verification mail after registration or the reset mail after a
// password reset request.
package notify

import (
	"context"
	"log/slog"

	"github.com/gatekit/gatekit/internal/auth/domain"
)

// Sender delivers a notification to the principal it names. Delivery
// failures are reported to the caller but never retried here.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// LogSender writes notifications to the log instead of delivering them.
// Useful for demos and local development where no mail transport exists.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.Logger.Info("notification",
		slog.String("action", string(n.Action)),
		slog.String("username", n.Principal.Username),
		slog.String("token", n.EncodedToken),
		slog.String("origin", n.Origin),
	)
	return nil
}
