package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestAccountLifecycle walks the full account story over both store
// drivers: register, verify, log in, refresh with rotation, reset the
// password and log out.
func TestAccountLifecycle(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			client, mail := startService(t, driver)

			// Health first.
			live, err := client.GetLiveness(ctx)
			require.NoError(t, err)
			require.Equal(t, "ok", live.Status)

			ready, err := client.GetReadiness(ctx)
			require.NoError(t, err)
			require.Equal(t, "ok", ready.Status)

			// Register and verify through the emailed token.
			reg, err := client.Register(ctx, "june@test.com", "initial-password")
			require.NoError(t, err)
			require.True(t, reg.Success)

			verifyToken := mail.lastTokenFor(t, "june@test.com", domain.KindVerify)
			verified, err := client.Verify(ctx, verifyToken)
			require.NoError(t, err)
			require.True(t, verified.Verified)

			// The verification token is single use.
			_, err = client.Verify(ctx, verifyToken)
			requireAPIStatus(t, err, http.StatusUnauthorized)

			// Log in and inspect the account.
			pair, err := client.Login(ctx, "june@test.com", "initial-password")
			require.NoError(t, err)
			require.Equal(t, "Bearer", pair.TokenType)

			info, err := client.UserInfo(ctx, pair.AccessToken)
			require.NoError(t, err)
			require.Equal(t, "june@test.com", info.Username)
			require.True(t, info.Verified)

			// Rotate the pair; the old refresh token dies.
			rotated, err := client.Refresh(ctx, pair.RefreshToken)
			require.NoError(t, err)
			require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

			_, err = client.Refresh(ctx, pair.RefreshToken)
			requireAPIStatus(t, err, http.StatusUnauthorized)

			// Reset the password through the emailed reset token.
			ack, err := client.RequestPasswordReset(ctx, "june@test.com", "https://app.test.com")
			require.NoError(t, err)
			require.True(t, ack.Success)

			resetToken := mail.lastTokenFor(t, "june@test.com", domain.KindReset)
			done, err := client.ResetPassword(ctx, resetToken, "rotated-password")
			require.NoError(t, err)
			require.True(t, done.Success)

			// The reset revoked the rotated refresh token too.
			_, err = client.Refresh(ctx, rotated.RefreshToken)
			requireAPIStatus(t, err, http.StatusUnauthorized)

			// Old password is gone, new one works.
			_, err = client.Login(ctx, "june@test.com", "initial-password")
			requireAPIStatus(t, err, http.StatusUnauthorized)

			pair, err = client.Login(ctx, "june@test.com", "rotated-password")
			require.NoError(t, err)

			// Log out and confirm the refresh token is dead.
			require.NoError(t, client.Logout(ctx, pair.RefreshToken))
			_, err = client.Refresh(ctx, pair.RefreshToken)
			requireAPIStatus(t, err, http.StatusUnauthorized)
		})
	}
}

func requireAPIStatus(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
}
