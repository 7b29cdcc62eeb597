package domain

import "time"

// Principal is the authenticated identity record. The password secret is
// held only as an argon2id hash; the record is mutated exclusively through
// the authentication service (registration, verification, password reset).
type Principal struct {
	ID           string
	Username     string // unique login name, typically an email address
	PasswordHash string // argon2id PHC string, never the plaintext
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
