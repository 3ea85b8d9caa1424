package httpx

import "net/http"

// RequireAnyRole gates a route by role allow-list. The allow-list is fixed at
// route-registration time. An empty list means "any authenticated identity".
// Compose after AuthnMiddleware; if no identity is present in the context the
// request is treated as unauthenticated rather than forbidden.
func RequireAnyRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				// Should be unreachable when composed after AuthnMiddleware.
				writeBearerError(w)
				return
			}

			if len(want) > 0 {
				if _, ok := want[role]; !ok {
					WriteError(w, http.StatusForbidden, "forbidden", "access denied")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
