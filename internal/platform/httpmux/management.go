// Package httpmux builds the management HTTP surface.
package httpmux

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route paths served by the management router.
const (
	HealthPath   = "/manage/health"
	MetricsPath  = "/metrics"
	ProfilerPath = "/debug/pprof"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type errorBody struct {
	Message string `json:"message"`
}

// NewManagementRouter serves readiness, metrics and the runtime profiler.
// A nil gatherer leaves /metrics unrouted.
func NewManagementRouter(pinger Pinger, gatherer prometheus.Gatherer, pingTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.With(middleware.NoCache).Get(HealthPath, func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
		defer cancel()
		if pinger != nil {
			if err := pinger.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, errorBody{Message: err.Error()})
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("healthy"))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	// Profiler serves its own /pprof subtree under the mount point.
	r.Mount("/debug", middleware.Profiler())
	return r
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
