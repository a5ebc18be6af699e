package httpx

import "context"

type ctxKey string

const (
	CtxKeySubject  ctxKey = "subject"
	CtxKeyScopes   ctxKey = "scopes"
	CtxKeyClaims   ctxKey = "claims" // full jwtx.Claims of an admin caller
	CtxKeyClientID ctxKey = "client_id"
)

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}

// SubjectFromContext returns the admin token subject, if any.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeySubject).(string)
	return s
}

// ClientIDFromContext returns the tenant authenticated by SecretAuthMiddleware.
func ClientIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeyClientID).(string)
	return s
}
