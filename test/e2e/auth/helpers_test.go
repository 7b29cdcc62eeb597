package auth_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gatekit/gatekit/internal/auth/domain"
	authhttp "github.com/gatekit/gatekit/internal/auth/http"
	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/internal/auth/store/drivers/memory"
	"github.com/gatekit/gatekit/internal/auth/store/drivers/sqlite"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for end-to-end tests. Each test boots the full HTTP
 * stack (router, middleware, service, store) in-process and talks to it
 * through the public SDK client only.
 */

// mailbox stands in for the mail transport and hands tokens to tests.
type mailbox struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (m *mailbox) Send(_ context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

func (m *mailbox) lastTokenFor(t *testing.T, username string, kind domain.Kind) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Principal.Username == username && m.sent[i].Action == kind {
			return m.sent[i].EncodedToken
		}
	}
	t.Fatalf("no %s notification for %s", kind, username)
	return ""
}

// startService boots the whole stack on the given store driver and
// returns an SDK client pointed at it.
func startService(t *testing.T, driver string) (*authsdk.SDKClient, *mailbox) {
	t.Helper()

	var st store.Store
	switch driver {
	case "memory":
		st = memory.New()
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL",
			filepath.Join(t.TempDir(), "e2e.db"))
		s, err := sqlite.NewStore(dsn)
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		t.Cleanup(func() { _ = s.Close() })
		st = s
	default:
		t.Fatalf("unknown driver %q", driver)
	}

	mail := &mailbox{}
	svc, err := service.NewService(service.Config{
		Store:        st,
		Notifier:     mail,
		Clock:        clockx.System{},
		TTL:          service.DefaultTTLPolicy(),
		SecretLength: service.DefaultSecretLength,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := authhttp.NewRouter("e2e", st, svc, logger)
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return authsdk.NewSDKClient(server.URL), mail
}
