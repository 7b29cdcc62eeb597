package authsdk

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterResponse reports the registration outcome. The verification
// token is delivered out of band; it only appears here when the server
// runs with the demo notifier.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginRequest exchanges a username/password pair for a token pair.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh token into a fresh token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// VerifyRequest redeems an emailed verification token.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyResponse reports whether the account is now verified.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Username string `json:"username,omitempty"`
}

// ResetRequestRequest asks for a password reset link. Origin is echoed
// into the notification so the mail can link back to the right frontend.
type ResetRequestRequest struct {
	Username string `json:"username" validate:"required"`
	Origin   string `json:"origin,omitempty" validate:"omitempty,url"`
}

// ResetRequestResponse acknowledges a reset request. The body is the
// same whether or not the account exists.
type ResetRequestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ResetPerformRequest redeems a reset token and sets a new password.
type ResetPerformRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

// ResetPerformResponse reports the outcome of a password reset.
type ResetPerformResponse struct {
	Success bool `json:"success"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserInfoResponse describes the principal behind an access token.
type UserInfoResponse struct {
	Username  string `json:"username"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"created_at"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds per-dependency status for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}
