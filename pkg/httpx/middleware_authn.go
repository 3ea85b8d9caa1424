package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/opencouncil/deskd/pkg/jwtx"
	"github.com/opencouncil/deskd/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token on every request and injects the
// decoded identity into the request context. All failure kinds collapse to a
// single 401 with a generic body; the specific cause (malformed, bad
// signature, expired) is logged and never surfaced to the client.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verify failed", "err", err)
				writeBearerError(w)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant 401 for bearer auth. The body never reveals which
// verification step failed.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
}
