package authsdk

import (
	"context"
	"net/http"
	"time"
)

// SDKClient is a plain HTTP client for the gatekit API.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *SDKClient) Register(ctx context.Context, username, password string) (*RegisterResponse, error) {
	var out RegisterResponse
	err := c.postJSON(ctx, "/v1/auth/register", RegisterRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token pair.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh rotates a refresh token into a fresh pair. The old refresh
// token stops working once this call succeeds.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.postJSON(ctx, "/v1/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify redeems an emailed verification token.
func (c *SDKClient) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	var out VerifyResponse
	err := c.postJSON(ctx, "/v1/auth/verify", VerifyRequest{Token: token}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks the service to mail a reset link.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, username, origin string) (*ResetRequestResponse, error) {
	var out ResetRequestResponse
	err := c.postJSON(ctx, "/v1/auth/reset/request", ResetRequestRequest{
		Username: username,
		Origin:   origin,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword redeems a reset token and sets the new password.
func (c *SDKClient) ResetPassword(ctx context.Context, token, newPassword string) (*ResetPerformResponse, error) {
	var out ResetPerformResponse
	err := c.postJSON(ctx, "/v1/auth/reset", ResetPerformRequest{
		Token:       token,
		NewPassword: newPassword,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes a refresh token. Revoking an already revoked token is
// not an error.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	return c.postJSON(ctx, "/v1/auth/logout", LogoutRequest{RefreshToken: refreshToken}, nil)
}

// UserInfo returns the principal behind the access token.
func (c *SDKClient) UserInfo(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	var out UserInfoResponse
	err := c.getJSON(ctx, "/v1/userinfo", accessToken, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks the liveness probe.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/livez", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReadiness checks the readiness probe.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/readyz", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
