package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pspcatalog/internal/platform/metrics"
	"pspcatalog/pkg/platform/httputil"
	"pspcatalog/pkg/platform/middleware/requestid"
	"pspcatalog/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// Registrar mounts a domain's endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backing dependency.
type HealthCheck func(ctx context.Context) error

// Options carries the router's optional collaborators.
type Options struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	MetricsPath  string
	HealthChecks map[string]HealthCheck
}

// NewRouter wires shared middleware, operational endpoints and every domain
// registrar onto one chi router.
func NewRouter(opts Options, registrars ...Registrar) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Handle(metricsPath, promhttp.Handler())
	r.Get("/health", healthHandler(logger, opts.HealthChecks))

	for _, reg := range registrars {
		reg.Register(r)
	}
	return r
}

func healthHandler(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		components := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				healthy = false
				components[name] = "down"
				logger.WarnContext(ctx, "health check failed", "component", name, "error", err)
				continue
			}
			components[name] = "up"
		}

		status := http.StatusOK
		body := map[string]any{"status": "ok", "components": components}
		if !healthy {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
