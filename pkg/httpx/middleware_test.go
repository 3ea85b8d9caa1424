package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/opencouncil/deskd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTokens(t *testing.T) *jwtx.HS256 {
	t.Helper()

	svc, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "deskd", time.Hour)
	require.NoError(t, err)
	return svc
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requireGeneric401(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

	var body httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unauthenticated", body.Error)
	require.Equal(t, "invalid or expired token", body.ErrorDescription)
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := httpx.UserIDFromContext(r.Context())
		email, _ := httpx.EmailFromContext(r.Context())
		role, _ := httpx.RoleFromContext(r.Context())
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"user_id": userID,
			"email":   email,
			"role":    role,
		})
	})
	handler := httpx.Chain(echo, httpx.AuthnMiddleware(tokens))

	t.Run("valid token injects identity", func(t *testing.T) {
		token, err := tokens.Issue("user-1", "jane@example.com", "staff")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "user-1", got["user_id"])
		require.Equal(t, "jane@example.com", got["email"])
		require.Equal(t, "staff", got["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		requireGeneric401(t, rec)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		requireGeneric401(t, rec)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		requireGeneric401(t, rec)
	})

	t.Run("expired token gets the same body", func(t *testing.T) {
		claims := jwtx.NewClaims(
			"user-1", "jane@example.com", "user", "deskd",
			time.Minute, time.Now().UTC().Add(-time.Hour),
		)
		expired, err := tokens.Sign(claims)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		requireGeneric401(t, rec)
	})
}

func TestRequireAnyRole(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)

	issue := func(role string) string {
		token, err := tokens.Issue("user-1", "jane@example.com", role)
		require.NoError(t, err)
		return token
	}

	do := func(handler http.Handler, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	adminOnly := httpx.Chain(okHandler(),
		httpx.AuthnMiddleware(tokens),
		httpx.RequireAnyRole("admin"),
	)

	t.Run("allowed role passes", func(t *testing.T) {
		rec := do(adminOnly, issue("admin"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role gets 403", func(t *testing.T) {
		rec := do(adminOnly, issue("staff"))
		require.Equal(t, http.StatusForbidden, rec.Code)

		var body httpx.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "forbidden", body.Error)
	})

	t.Run("multiple allowed roles", func(t *testing.T) {
		staffOrAdmin := httpx.Chain(okHandler(),
			httpx.AuthnMiddleware(tokens),
			httpx.RequireAnyRole("staff", "admin"),
		)
		require.Equal(t, http.StatusOK, do(staffOrAdmin, issue("staff")).Code)
		require.Equal(t, http.StatusOK, do(staffOrAdmin, issue("admin")).Code)
		require.Equal(t, http.StatusForbidden, do(staffOrAdmin, issue("user")).Code)
	})

	t.Run("empty allow-list admits any authenticated role", func(t *testing.T) {
		anyAuthed := httpx.Chain(okHandler(),
			httpx.AuthnMiddleware(tokens),
			httpx.RequireAnyRole(),
		)
		require.Equal(t, http.StatusOK, do(anyAuthed, issue("user")).Code)
	})

	t.Run("no identity in context is a 401 not a 403", func(t *testing.T) {
		bare := httpx.Chain(okHandler(), httpx.RequireAnyRole("admin"))
		rec := do(bare, "")
		requireGeneric401(t, rec)
	})

	t.Run("unauthenticated request never reaches the role check", func(t *testing.T) {
		rec := do(adminOnly, "")
		requireGeneric401(t, rec)
	})
}
