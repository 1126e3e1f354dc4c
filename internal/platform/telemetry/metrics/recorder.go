package metrics

import (
	"context"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const namespace = "eventline"

// Recorder owns a private Prometheus registry and the RPC metrics in it.
type Recorder struct {
	registry    *prom.Registry
	rpcTotal    *prom.CounterVec
	rpcDuration *prom.HistogramVec
}

// NewRecorder builds a registry with RPC metrics plus Go and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prom.NewRegistry(),
		rpcTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Handled gRPC requests by method and status code",
		}, []string{"method", "code"}),
		rpcDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request latency by method",
			Buckets:   prom.DefBuckets,
		}, []string{"method"}),
	}
	r.registry.MustRegister(
		r.rpcTotal,
		r.rpcDuration,
		promcollect.NewGoCollector(),
		promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry served on /metrics.
func (r *Recorder) Registry() *prom.Registry {
	return r.registry
}

// ObserveRPC records one finished call.
func (r *Recorder) ObserveRPC(method string, err error, d time.Duration) {
	if r == nil {
		return
	}
	r.rpcTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	r.rpcDuration.WithLabelValues(method).Observe(d.Seconds())
}

// RegisterStoredEvents exposes count as a gauge evaluated at scrape time.
// Failed counts report -1 so a broken store stays visible on dashboards.
func (r *Recorder) RegisterStoredEvents(count func(context.Context) (int64, error), timeout time.Duration) error {
	gauge := prom.NewGaugeFunc(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "stored_events",
		Help:      "Number of events held by the configured store",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		n, err := count(ctx)
		if err != nil {
			return -1
		}
		return float64(n)
	})
	return r.registry.Register(gauge)
}

// UnaryServerInterceptor records count and latency for unary calls.
func (r *Recorder) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		r.ObserveRPC(info.FullMethod, err, time.Since(start))
		return resp, err
	}
}
