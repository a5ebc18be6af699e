package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/aussiebroadwan/tabledger/pkg/ratelimit"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorResponse {
	t.Helper()
	var body httpx.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "7")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "not-a-number")

	got := httpx.ParseRateLimitFromEnv("TEST", httpx.StrictLimit)
	require.Equal(t, 7, got.RequestsPerWindow)
	require.Equal(t, 30*time.Second, got.Window)
	require.Equal(t, httpx.StrictLimit.Burst, got.Burst)
}

func TestRateLimitMiddleware(t *testing.T) {
	l, err := ratelimit.NewTokenBucket(ratelimit.Config{Requests: 2, Window: time.Minute})
	require.NoError(t, err)
	h := httpx.Chain(okHandler, httpx.RateLimitMiddleware(l, httpx.IPKeyExtractor))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/clients", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusNoContent, do().Code)
	require.Equal(t, http.StatusNoContent, do().Code)

	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	body := decodeError(t, rec)
	require.Equal(t, httpx.CodeRateLimited, body.Error)
	require.Equal(t, http.StatusTooManyRequests, body.Code)
}

type failingLimiter struct{}

func (failingLimiter) Admit(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis: connection refused")
}

func TestRateLimitMiddlewareFailsClosed(t *testing.T) {
	h := httpx.Chain(okHandler, httpx.RateLimitMiddleware(failingLimiter{}, httpx.IPKeyExtractor))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, httpx.CodeStoreUnavailable, decodeError(t, rec).Error)
}

func TestAdminGate(t *testing.T) {
	pemKey, err := cryptox.GenerateSigningKey(cryptox.AlgorithmEdDSA)
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(cryptox.AlgorithmEdDSA, "admin", pemKey)
	require.NoError(t, err)
	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddJWK(signer.PublicJWK()))
	v := jwtx.NewKeySetVerifier(ks, "ledger", 0)

	h := httpx.Chain(okHandler, httpx.AuthnMiddleware(v), httpx.RequireAllScopes("clients:write"))

	token := func(scopes ...string) string {
		tok, err := signer.Sign(jwtx.NewClaims("operator", scopes, time.Minute, "ledger", time.Now()))
		require.NoError(t, err)
		return tok
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusForbidden},
		{"not bearer", "Basic abc", http.StatusForbidden},
		{"bad token", "Bearer abc.def.ghi", http.StatusForbidden},
		{"missing scope", "Bearer " + token("clients:read"), http.StatusForbidden},
		{"allowed", "Bearer " + token("clients:write"), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/clients", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusForbidden {
				body := decodeError(t, rec)
				require.Equal(t, httpx.MessageForbidden, body.Message)
				require.Equal(t, http.StatusForbidden, body.Code)
			}
		})
	}

	t.Run("subject in context", func(t *testing.T) {
		var subject string
		h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject = httpx.SubjectFromContext(r.Context())
		}), httpx.AuthnMiddleware(v))

		req := httptest.NewRequest(http.MethodGet, "/v1/clients/x", nil)
		req.Header.Set("Authorization", "Bearer "+token())
		h.ServeHTTP(httptest.NewRecorder(), req)
		require.Equal(t, "operator", subject)
	})
}

type stubVerifier struct {
	secrets map[string]string
	err     error
}

func (s stubVerifier) VerifySecret(_ context.Context, id, secret string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	want, ok := s.secrets[id]
	return ok && want == secret, nil
}

func TestSecretAuthMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpx.ClientIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	v := stubVerifier{secrets: map[string]string{"tenant-a": "s1"}}
	h := httpx.Chain(next, httpx.SecretAuthMiddleware(v))

	do := func(h http.Handler, id, secret string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/transfers", nil)
		if id != "" {
			req.Header.Set(httpx.HeaderClientID, id)
		}
		if secret != "" {
			req.Header.Set(httpx.HeaderClientSecret, secret)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(h, "tenant-a", "s1")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "tenant-a", seen)

	// Unknown tenant and wrong secret are indistinguishable
	wrong := do(h, "tenant-a", "nope")
	unknown := do(h, "tenant-z", "s1")
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, wrong.Code, unknown.Code)
	require.Equal(t, wrong.Body.String(), unknown.Body.String())

	require.Equal(t, http.StatusUnauthorized, do(h, "", "").Code)

	broken := httpx.Chain(next, httpx.SecretAuthMiddleware(stubVerifier{err: errors.New("timeout")}))
	require.Equal(t, http.StatusServiceUnavailable, do(broken, "tenant-a", "s1").Code)
}

type countingVerifier struct{ calls int }

func (c *countingVerifier) VerifySecret(context.Context, string, string) (bool, error) {
	c.calls++
	return false, nil
}

func TestSecretAuthMiddlewareRejectsOversizedSecret(t *testing.T) {
	v := &countingVerifier{}
	h := httpx.Chain(okHandler, httpx.SecretAuthMiddleware(v))

	send := func(secret string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/transfers", nil)
		req.Header.Set(httpx.HeaderClientID, "tenant-a")
		req.Header.Set(httpx.HeaderClientSecret, secret)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	wrong := send("short")
	require.Equal(t, 1, v.calls)

	huge := send(strings.Repeat("x", cryptox.MaxSecretLength+1))
	require.Equal(t, 1, v.calls, "oversized secret must not be hashed")
	require.Equal(t, http.StatusUnauthorized, huge.Code)
	require.Equal(t, wrong.Body.String(), huge.Body.String())

	send(strings.Repeat("x", cryptox.MaxSecretLength))
	require.Equal(t, 2, v.calls)
}
