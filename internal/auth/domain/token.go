package domain

import "time"

// Kind is the closed set of token kinds. A token's kind is fixed at creation
// and must match the kind expected by whichever authenticator later checks
// it; a refresh token never validates as an access token and so on.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
	KindVerify  Kind = "verify"
	KindReset   Kind = "reset"
)

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindAccess, KindRefresh, KindVerify, KindReset:
		return true
	}
	return false
}

// SingleUse reports whether tokens of this kind are consumed by their first
// successful authentication.
func (k Kind) SingleUse() bool {
	return k == KindVerify || k == KindReset
}

// TokenRecord is the persisted, server-only projection of a token. It never
// carries the plaintext secret; only the argon2id hash survives persistence.
type TokenRecord struct {
	Key        string // unique lookup id; the store is authoritative
	SecretHash string
	Kind       Kind
	Principal  Principal
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the record is no longer valid at the given time.
func (t TokenRecord) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IssuedToken pairs a freshly created TokenRecord with its plaintext secret.
// It exists only between creation and encoding: the secret goes to the
// caller inside the encoded token string and is never stored.
type IssuedToken struct {
	Record TokenRecord
	Secret string
}

// Info returns the wire triple handed to the token encoder.
func (t IssuedToken) Info() TokenInfo {
	return TokenInfo{
		Key:       t.Record.Key,
		Secret:    t.Secret,
		ExpiresAt: t.Record.ExpiresAt.Unix(),
	}
}

// TokenInfo is the decoded wire form of a token: the unit the encoder
// round-trips into the opaque string handed to clients.
type TokenInfo struct {
	Key       string
	Secret    string
	ExpiresAt int64 // unix seconds
}

// TokenPair is what login and refresh return: a short-lived access token and
// the refresh token that can replace it.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // seconds until access expiry
}
