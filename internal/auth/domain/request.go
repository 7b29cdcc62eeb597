package domain

// RegisterRequest carries a new principal's credentials.
type RegisterRequest struct {
	Username string
	Password string
}

// RegisterResponse reports the outcome of registration. EncodedToken holds
// the verification token for test and operational visibility; production
// callers should rely on the dispatched notification instead.
type RegisterResponse struct {
	Success      bool
	Message      string
	EncodedToken string
}

// ResetRequest asks for a password reset notification. Origin names the
// requesting surface (web form, support tooling) for the outbound message.
type ResetRequest struct {
	Username string
	Origin   string
}

// ResetResponse reports whether a reset was initiated. Success is the only
// signal; it does not reveal whether the username exists beyond that.
type ResetResponse struct {
	Success      bool
	Message      string
	EncodedToken string
}
