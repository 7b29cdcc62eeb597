package service

import "errors"

var (
	// ErrInvalidCredentials covers a bad username/password pair or a
	// secret that fails hash verification.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrMalformedToken means an encoded token could not be decoded
	// into its key, secret and expiry parts.
	ErrMalformedToken = errors.New("malformed_token")

	// ErrTokenKindMismatch means the stored token exists but is of a
	// different kind than the claim asserts.
	ErrTokenKindMismatch = errors.New("token_kind_mismatch")

	// ErrTokenExpired means the stored token's expiry has passed.
	ErrTokenExpired = errors.New("token_expired")

	ErrTokenNotFound     = errors.New("token_not_found")
	ErrPrincipalNotFound = errors.New("principal_not_found")

	// ErrNotificationFailed reports a notification delivery failure.
	// Registration and reset requests still succeed at this layer; the
	// caller decides whether to surface it.
	ErrNotificationFailed = errors.New("notification_failed")
)
