package jwtx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/opencouncil/deskd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewHS256(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := jwtx.NewHS256([]byte("too-short"), "deskd", time.Hour)
		require.ErrorIs(t, err, jwtx.ErrInvalidKey)
	})

	t.Run("defaults ttl when non-positive", func(t *testing.T) {
		svc, err := jwtx.NewHS256(testSecret, "deskd", 0)
		require.NoError(t, err)

		token, err := svc.Issue("user-1", "a@b.com", "user")
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		require.WithinDuration(t,
			time.Now().Add(jwtx.DefaultTokenTTL),
			claims.ExpiresAt.Time,
			time.Minute,
		)
	})

	t.Run("copies the secret", func(t *testing.T) {
		secret := make([]byte, len(testSecret))
		copy(secret, testSecret)

		svc, err := jwtx.NewHS256(secret, "deskd", time.Hour)
		require.NoError(t, err)

		token, err := svc.Issue("user-1", "a@b.com", "user")
		require.NoError(t, err)

		// Mutating the caller's slice must not affect verification.
		secret[0] ^= 0xFF
		_, err = svc.Verify(token)
		require.NoError(t, err)
	})
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc, err := jwtx.NewHS256(testSecret, "deskd", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "jane@example.com", "staff")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, "staff", claims.Role)
	require.Equal(t, "deskd", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	svc, err := jwtx.NewHS256(testSecret, "deskd", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue("user-123", "jane@example.com", "user")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)

		// Rewrite a claim but keep the original signature.
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)
		escalated := strings.Replace(string(payload), `"role":"user"`, `"role":"admin"`, 1)
		require.NotEqual(t, string(payload), escalated)

		tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(escalated)) + "." + parts[2]

		_, err = svc.Verify(tampered)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "deskd", time.Hour)
		require.NoError(t, err)

		_, err = other.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwtx.NewClaims(
			"user-123", "jane@example.com", "user", "deskd",
			time.Minute, time.Now().UTC().Add(-time.Hour),
		)
		expired, err := svc.Sign(claims)
		require.NoError(t, err)

		_, err = svc.Verify(expired)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		other, err := jwtx.NewHS256(testSecret, "someone-else", time.Hour)
		require.NoError(t, err)

		foreign, err := other.Issue("user-123", "jane@example.com", "user")
		require.NoError(t, err)

		_, err = svc.Verify(foreign)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}
