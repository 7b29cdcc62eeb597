package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gatekit/gatekit/internal/auth/domain"
)

// TokenSeparator joins the key, secret and expiry parts of an encoded
// token. Keys are Crockford base32 ULIDs and secrets are base62, so the
// separator cannot appear inside either part.
const TokenSeparator = "."

// TokenEncoder round-trips between domain.TokenInfo and the opaque wire
// string `key.secret.expiryUnix`.
type TokenEncoder struct{}

func (TokenEncoder) Encode(info domain.TokenInfo) string {
	return info.Key + TokenSeparator + info.Secret + TokenSeparator +
		strconv.FormatInt(info.ExpiresAt, 10)
}

// Decode parses an encoded token. Any structural problem, wrong part
// count, empty part or non-integer expiry, yields ErrMalformedToken.
func (TokenEncoder) Decode(encoded string) (domain.TokenInfo, error) {
	parts := strings.Split(encoded, TokenSeparator)
	if len(parts) != 3 {
		return domain.TokenInfo{}, ErrMalformedToken
	}
	key, secret, rawExpiry := parts[0], parts[1], parts[2]
	if key == "" || secret == "" || rawExpiry == "" {
		return domain.TokenInfo{}, ErrMalformedToken
	}

	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return domain.TokenInfo{Key: key, Secret: secret, ExpiresAt: expiry}, nil
}
