package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/service"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/aussiebroadwan/tabledger/pkg/ratelimit"
	"github.com/aussiebroadwan/tabledger/pkg/slogx"

	_ "github.com/aussiebroadwan/tabledger/api/ledger" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Admin token scopes.
const (
	ScopeClientsWrite  = "clients:write"
	ScopeClientsRead   = "clients:read"
	ScopeTransfersRead = "transfers:read"
)

// Limiters holds one limiter per rate limit profile.
type Limiters struct {
	Strict   ratelimit.Limiter
	Moderate ratelimit.Limiter
	Lenient  ratelimit.Limiter
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	adminKeys    *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limiters     Limiters

	store           store.Store
	ClientService   *service.ClientService
	TransferService *service.TransferService
}

func NewRouter(
	adminKeys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	limiters Limiters,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		adminKeys:    adminKeys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		limiters:     limiters,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerTransfers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			tabledger API
//	@version		0.1.0
//	@description	Tenant admission and transfer ledger for a multi-tenant access management backend.
//	@description
//	@description				Operators register tenants with an admin bearer JWT. Tenants record and read
//	@description				their transfers with the x-client-id and x-client-secret header pair.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tabledger
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin JWT. Format: "Bearer {token}".
//
//	@securityDefinitions.apikey	ClientID
//	@in							header
//	@name						x-client-id
//
//	@securityDefinitions.apikey	ClientSecret
//	@in							header
//	@name						x-client-secret
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// limit builds the rate limit middleware for one route. Keys are scoped by
// route so that endpoints sharing a profile keep separate budgets.
func (r *Router) limit(l ratelimit.Limiter, route string, key httpx.KeyExtractor) httpx.Middleware {
	return httpx.RateLimitMiddleware(l, func(req *http.Request) string {
		k := key(req)
		if k == "" {
			return ""
		}
		return route + ":" + k
	})
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}
	th := &TransfersHandler{TransferService: r.TransferService}

	// Registration is rate limited before the token is checked so a flood
	// of bad tokens is turned away cheaply.
	r.Mux.Handle("POST /v1/clients",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.limit(r.limiters.Strict, "register", httpx.IPKeyExtractor),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(ScopeClientsWrite),
		),
	)

	r.Mux.Handle("GET /v1/clients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.limit(r.limiters.Moderate, "client", httpx.IPKeyExtractor),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(ScopeClientsRead),
		),
	)

	r.Mux.Handle("GET /v1/clients/{id}/transfers",
		httpx.Chain(http.HandlerFunc(th.HandleListForClient),
			r.limit(r.limiters.Moderate, "client-transfers", httpx.IPKeyExtractor),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(ScopeTransfersRead),
		),
	)
}

func (r *Router) registerTransfers() {
	h := &TransfersHandler{TransferService: r.TransferService}
	gate := httpx.SecretAuthMiddleware(r.ClientService)

	// The tenant budget is keyed by a header the caller controls, so a
	// shared per-IP budget runs first. Rotating made-up ids from one
	// address cannot get past it to the secret check.
	perIP := r.limit(r.limiters.Lenient, "tenant-ip", httpx.IPKeyExtractor)

	r.Mux.Handle("POST /v1/transfers",
		httpx.Chain(http.HandlerFunc(h.HandleTrack),
			perIP,
			r.limit(r.limiters.Moderate, "track", httpx.TenantHeaderKeyExtractor),
			gate,
		),
	)

	r.Mux.Handle("POST /v1/transfers/batch",
		httpx.Chain(http.HandlerFunc(h.HandleTrackBatch),
			perIP,
			r.limit(r.limiters.Moderate, "track-batch", httpx.TenantHeaderKeyExtractor),
			gate,
		),
	)

	r.Mux.Handle("GET /v1/transfers",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			perIP,
			r.limit(r.limiters.Lenient, "transfers", httpx.TenantHeaderKeyExtractor),
			gate,
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.limit(r.limiters.Lenient, "livez", httpx.IPKeyExtractor),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.adminKeys),
			r.limit(r.limiters.Lenient, "readyz", httpx.IPKeyExtractor),
		),
	)
}
