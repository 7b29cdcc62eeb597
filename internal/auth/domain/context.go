package domain

// SecurityContext is the verified (or rejected) outcome of evaluating a
// claim. Password and access-token flows carry the resolved Principal;
// refresh/verify/reset flows carry the full TokenRecord so the caller can
// act on it (read the principal behind a reset token, rotate a refresh
// token). A rejected context carries neither.
type SecurityContext struct {
	Authenticated bool
	Message       string // generic on failure, never the concrete reason
	Claim         Claim
	Principal     *Principal
	Token         *TokenRecord
}

// Unauthenticated returns a fresh rejected context for the claim. Every call
// allocates its own value; rejected contexts are never shared.
func Unauthenticated(claim Claim) SecurityContext {
	return SecurityContext{
		Message: "authentication failed",
		Claim:   claim,
	}
}
