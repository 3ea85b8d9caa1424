package cryptox_test

import (
	"strings"
	"testing"

	"github.com/opencouncil/deskd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("fresh salt per call", func(t *testing.T) {
		again, err := cryptox.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.NotEqual(t, hash, again)
	})

	t.Run("verifies round trip", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		err := cryptox.VerifyPassword("wrong horse", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("empty password still hashes", func(t *testing.T) {
		empty, err := cryptox.HashPassword("")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("", empty))
		require.ErrorIs(t, cryptox.VerifyPassword("x", empty), cryptox.ErrPasswordMismatch)
	})
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plainhash"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cryptox.VerifyPassword("password", tc.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
		})
	}
}
