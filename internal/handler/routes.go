package handler

import (
	"net/http"

	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/metrics"
	"github.com/msomdec/pokedex/internal/service"
)

// Rate-limit groups. Routes in the same group share one budget.
const (
	GroupUsers      = "users"
	GroupCollection = "collection"
)

// ProtectedPrefix is the path prefix that always requires a bearer token.
// No routes are registered under it yet.
const ProtectedPrefix = "/protected/"

// Services bundles the dependencies of the HTTP layer.
type Services struct {
	Auth       *service.AuthService
	Tokens     *service.TokenService
	Collection *service.CollectionService
	Limiter    *service.SlidingWindow
	// Admissions receives rate-limit decisions. Optional.
	Admissions domain.AdmissionRecorder
	// Metrics enables request instrumentation and GET /metrics. Optional.
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// route is one entry of the route table.
type route struct {
	method  string
	pattern string
	group   string // rate-limit group, empty for none
	auth    bool
	handler http.Handler
}

func routeTable(s Services) []route {
	auth := NewAuthHandler(s.Auth)
	users := NewUserHandler(s.Auth)
	collection := NewCollectionHandler(s.Collection)

	routes := []route{
		{method: http.MethodGet, pattern: "/{$}", handler: http.HandlerFunc(HandleHome)},
		{method: http.MethodGet, pattern: "/healthz", handler: http.HandlerFunc(HandleHealthz)},

		{method: http.MethodPost, pattern: "/register", handler: http.HandlerFunc(auth.HandleRegister)},
		{method: http.MethodPost, pattern: "/login", handler: http.HandlerFunc(auth.HandleLogin)},

		{method: http.MethodPatch, pattern: "/users/{id}", group: GroupUsers, handler: http.HandlerFunc(users.HandleUpdate)},
		{method: http.MethodDelete, pattern: "/users/{id}", group: GroupUsers, handler: http.HandlerFunc(users.HandleDelete)},

		{method: http.MethodPost, pattern: "/collection", group: GroupCollection, handler: http.HandlerFunc(collection.HandleCreateByName)},
		{method: http.MethodPost, pattern: "/collection/create", group: GroupCollection, handler: http.HandlerFunc(collection.HandleCreateDirect)},
		{method: http.MethodGet, pattern: "/collection", group: GroupCollection, handler: http.HandlerFunc(collection.HandleList)},
		{method: http.MethodGet, pattern: "/collection/name/{pokename}", handler: http.HandlerFunc(collection.HandlePreview)},
		{method: http.MethodGet, pattern: "/collection/{id}", handler: http.HandlerFunc(collection.HandleGet)},
		{method: http.MethodPatch, pattern: "/collection/{id}", handler: http.HandlerFunc(collection.HandleUpdate)},
		{method: http.MethodDelete, pattern: "/collection/{id}", handler: http.HandlerFunc(collection.HandleDelete)},
	}
	if s.Metrics != nil {
		routes = append(routes, route{method: http.MethodGet, pattern: "/metrics", handler: s.Metrics.Handler()})
	}
	return routes
}

// RegisterRoutes sets up all HTTP routes on the given mux. Per route the
// order is rate limit, then token check, then the handler.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	recorder := s.Admissions
	if s.Metrics != nil {
		recorder = domain.AdmissionRecorders{s.Metrics, s.Admissions}
	}

	for _, rt := range routeTable(s) {
		h := rt.handler
		if rt.auth {
			h = RequireAuth(s.Tokens, h)
		}
		if rt.group != "" {
			h = RateLimit(s.Limiter, rt.group, recorder, h)
		}
		mux.Handle(rt.method+" "+rt.pattern, h)
	}
}

// NewServer builds the full request pipeline: request logging, metrics,
// CORS, the protected-prefix check, then route dispatch.
func NewServer(s Services) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, s)

	var h http.Handler = mux
	h = ProtectPrefix(ProtectedPrefix, s.Tokens, h)
	h = CORS(s.AllowedOrigins, h)
	if s.Metrics != nil {
		h = Instrument(s.Metrics, h)
	}
	return RequestLogger(h)
}
