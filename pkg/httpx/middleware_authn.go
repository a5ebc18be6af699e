package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/aussiebroadwan/tabledger/pkg/slogx"
)

// Tenant credential headers.
const (
	HeaderClientID     = "x-client-id"
	HeaderClientSecret = "x-client-secret"
)

// AuthnMiddleware admits operator requests bearing a token v accepts. Every
// failure looks the same to the caller: 403 "Forbidden resource".
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				WriteError(w, http.StatusForbidden, CodeForbidden, MessageForbidden)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				WriteError(w, http.StatusForbidden, CodeForbidden, MessageForbidden)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeySubject, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return slogx.WithOperator(ctx, c.Subject)
}

// SecretVerifier checks a tenant's credential pair. It must answer false
// for unknown tenants rather than erroring, and only error when it could
// not check at all.
type SecretVerifier interface {
	VerifySecret(ctx context.Context, clientID, secret string) (bool, error)
}

// SecretAuthMiddleware authenticates tenants by the x-client-id and
// x-client-secret header pair.
func SecretAuthMiddleware(v SecretVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			clientID := strings.TrimSpace(r.Header.Get(HeaderClientID))
			secret := r.Header.Get(HeaderClientSecret)
			if clientID == "" || secret == "" || len(secret) > cryptox.MaxSecretLength {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid client credentials")
				return
			}

			ok, err := v.VerifySecret(ctx, clientID, secret)
			if err != nil {
				log.Error("client secret verification unavailable", "err", err)
				WriteError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, "Service temporarily unavailable")
				return
			}
			if !ok {
				log.Warn("client secret rejected")
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid client credentials")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyClientID, clientID)
			ctx = slogx.WithClientID(ctx, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
