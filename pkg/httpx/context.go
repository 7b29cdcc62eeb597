package httpx

import "context"

type ctxKey string

const (
	// CtxKeyPrincipal carries the authenticated principal's username once a
	// bearer token has been verified by the auth middleware.
	CtxKeyPrincipal ctxKey = "principal"
)

// ContextWithPrincipal attaches the authenticated username to the context.
func ContextWithPrincipal(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, CtxKeyPrincipal, username)
}

// PrincipalFromContext returns the authenticated username, if any.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyPrincipal).(string)
	return v, ok && v != ""
}
