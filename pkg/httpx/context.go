package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyEmail  ctxKey = "email"
	CtxKeyRole   ctxKey = "role"
	CtxKeyClaims ctxKey = "claims" // full jwtx.Claims if you need them
)

// UserIDFromContext returns the authenticated subject id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}

// RoleFromContext returns the authenticated role name, if any.
func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyRole).(string)
	return v, ok && v != ""
}

// EmailFromContext returns the authenticated email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyEmail).(string)
	return v, ok && v != ""
}
