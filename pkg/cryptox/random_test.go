package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateString(t *testing.T) {
	t.Run("produces exact requested length", func(t *testing.T) {
		for _, n := range []int{1, 8, 20, 30, 64} {
			s, err := GenerateString(n)
			require.NoError(t, err)
			require.Len(t, s, n)
		}
	})

	t.Run("stays within the alphabet", func(t *testing.T) {
		s, err := GenerateString(256)
		require.NoError(t, err)
		for _, c := range s {
			require.True(t, strings.ContainsRune(SecretAlphabet, c),
				"character %q outside alphabet", c)
		}
	})

	t.Run("never contains the token separator", func(t *testing.T) {
		require.NotContains(t, SecretAlphabet, ".")
		s, err := GenerateString(512)
		require.NoError(t, err)
		require.NotContains(t, s, ".")
	})

	t.Run("rejects non-positive lengths", func(t *testing.T) {
		_, err := GenerateString(0)
		require.Error(t, err)
		_, err = GenerateString(-5)
		require.Error(t, err)
	})

	t.Run("consecutive outputs differ", func(t *testing.T) {
		a := MustGenerateString(30)
		b := MustGenerateString(30)
		require.NotEqual(t, a, b)
	})
}
