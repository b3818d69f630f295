package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/metrics"
	"github.com/msomdec/pokedex/internal/service"
	"github.com/rs/cors"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext extracts the verified token claims from the request context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *service.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*service.Claims)
	return claims
}

// RequireAuth is middleware that rejects requests without a valid bearer
// token. Verification is stateless; the verified claims are injected into
// the request context.
func RequireAuth(tokens *service.TokenService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := tokens.Verify(bearerToken(r))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="pokedex"`)
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ProtectPrefix applies RequireAuth to every request whose path starts with
// prefix, whether or not a route is registered for it.
func ProtectPrefix(prefix string, tokens *service.TokenService, next http.Handler) http.Handler {
	protected := RequireAuth(tokens, next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, prefix) {
			protected.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit is middleware that admits requests through the group's sliding
// window and answers 429 once the window is full. Each decision is offered
// to rec, if set; recording failures never affect the response.
func RateLimit(limiter *service.SlidingWindow, group string, rec domain.AdmissionRecorder, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, at := limiter.Decide(group)

		if rec != nil {
			ev := domain.AdmissionEvent{
				Group:   group,
				Allowed: allowed,
				Method:  r.Method,
				Path:    r.URL.Path,
				At:      at,
			}
			if err := rec.Record(r.Context(), ev); err != nil {
				slog.Debug("record admission", "group", group, "error", err)
			}
		}

		if !allowed {
			writeMessage(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CORS applies a permissive cross-origin policy limited to allowedOrigins.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPost, http.MethodDelete, http.MethodPatch,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(next)
}

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs it once served.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Instrument reports every served request to m, labelled with the mux
// pattern that matched it.
func Instrument(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.ObserveRequest(r.Method, r.Pattern, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
