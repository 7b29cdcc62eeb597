package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SecretAlphabet is the character set used for generated token secrets.
// It deliberately excludes the token separator ('.') so an encoded token can
// always be split unambiguously. Keep this in sync with the encoder contract.
const SecretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateString returns a cryptographically secure random string of exactly
// n characters, uniform over SecretAlphabet. Each character is drawn with
// crypto/rand so prior outputs reveal nothing about future ones.
func GenerateString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("string length must be positive, got %d", n)
	}

	out := make([]byte, n)
	alphabetLen := big.NewInt(int64(len(SecretAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random string: %w", err)
		}
		out[i] = SecretAlphabet[idx.Int64()]
	}
	return string(out), nil
}

// MustGenerateString is like GenerateString but panics on error. Use only
// where a failing system RNG is unrecoverable anyway (init paths, tests).
func MustGenerateString(n int) string {
	s, err := GenerateString(n)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate random string: %v", err))
	}
	return s
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
