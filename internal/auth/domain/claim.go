package domain

// Claim is a caller-asserted proof of identity or possession: a
// username/password pair or an encoded bearer token. The concrete type (and
// for token claims, the expected kind) selects the authenticator path.
type Claim interface {
	isClaim()
}

// PasswordClaim asserts knowledge of a principal's password.
type PasswordClaim struct {
	Username string
	Password string
}

func (PasswordClaim) isClaim() {}

// TokenClaim asserts possession of an encoded token of a particular kind.
type TokenClaim struct {
	Kind    Kind   // the kind the stored record must have
	Encoded string // opaque key<sep>secret<sep>expiry string
}

func (TokenClaim) isClaim() {}

func NewPasswordClaim(username, password string) PasswordClaim {
	return PasswordClaim{Username: username, Password: password}
}

func NewAccessTokenClaim(encoded string) TokenClaim {
	return TokenClaim{Kind: KindAccess, Encoded: encoded}
}

func NewRefreshTokenClaim(encoded string) TokenClaim {
	return TokenClaim{Kind: KindRefresh, Encoded: encoded}
}

func NewVerifyClaim(encoded string) TokenClaim {
	return TokenClaim{Kind: KindVerify, Encoded: encoded}
}

func NewPasswordResetClaim(encoded string) TokenClaim {
	return TokenClaim{Kind: KindReset, Encoded: encoded}
}
