package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"simple secret", "password123"},
		{"complex secret", "P@ssw0rd!#$%^&*()"},
		{"long secret", strings.Repeat("a", 100)},
		{"empty secret", ""},
		{"unicode secret", "пароль🔒密码"},
		{"whitespace secret", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashSecret(tt.secret)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Contains(t, parts[3], "m=", "should contain memory parameter")
			require.Contains(t, parts[3], "t=", "should contain iterations parameter")
			require.Contains(t, parts[3], "p=", "should contain parallelism parameter")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	secret := "samesecret"

	hash1, err := HashSecret(secret)
	require.NoError(t, err)
	hash2, err := HashSecret(secret)
	require.NoError(t, err)

	// Same input, fresh salt, different strings - both must verify
	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.True(t, VerifySecret(secret, hash1))
	require.True(t, VerifySecret(secret, hash2))
}

func TestVerifySecret(t *testing.T) {
	hash, err := HashSecret("correct horse battery staple")
	require.NoError(t, err)

	t.Run("accepts correct secret", func(t *testing.T) {
		require.True(t, VerifySecret("correct horse battery staple", hash))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		require.False(t, VerifySecret("Correct horse battery staple", hash))
		require.False(t, VerifySecret("", hash))
	})

	t.Run("rejects malformed hashes without panicking", func(t *testing.T) {
		malformed := []string{
			"",
			"plainly not a hash",
			"$argon2id$v=19$m=19456,t=2,p=1$salt",        // missing hash part
			"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", // wrong variant
			"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA", // wrong version
			"$argon2id$v=19$m=a,t=b,p=c$c2FsdA$aGFzaA",     // bad parameters
			"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",    // bad base64 salt
			"$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!",    // bad base64 hash
		}
		for _, m := range malformed {
			require.False(t, VerifySecret("anything", m), "hash %q should not verify", m)
		}
	})
}
