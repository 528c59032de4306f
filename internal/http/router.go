// Package httpapi assembles the HTTP surface: middleware chain, module
// routes, metrics, and health.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mintgate/internal/platform/middleware"
	"mintgate/pkg/platform/httputil"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router composes. Handlers register under the
// authenticated group; health checkers are probed by /healthz and may be nil
// when the backend is not configured.
type Deps struct {
	Logger         *slog.Logger
	TokenValidator middleware.TokenValidator
	Handlers       []Registrar
	HealthChecks   map[string]HealthChecker
}

// NewRouter builds the chi router. Correlation ids are attached to every
// request; business routes additionally require a valid bearer token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Correlation)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(d.HealthChecks))

	r.Group(func(api chi.Router) {
		api.Use(middleware.RequireAuth(d.TokenValidator, d.Logger))
		for _, h := range d.Handlers {
			h.Register(api)
		}
	})

	return r
}

const healthProbeTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(ctx); err != nil {
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		httputil.WriteJSON(w, status, resp)
	}
}
