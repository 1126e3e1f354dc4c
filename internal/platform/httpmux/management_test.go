package httpmux

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthReportsHealthy(t *testing.T) {
	router := NewManagementRouter(fakePinger{}, nil, time.Second)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "healthy" {
		t.Fatalf("body = %q, want healthy", rec.Body.String())
	}
}

func TestHealthReportsUnavailable(t *testing.T) {
	router := NewManagementRouter(fakePinger{err: errors.New("dial tcp: connection refused")}, nil, time.Second)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body.Message, "connection refused") {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestMetricsServesGatherer(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "eventline_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	router := NewManagementRouter(fakePinger{}, registry, time.Second)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "eventline_test_total 1") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestMetricsUnroutedWithoutGatherer(t *testing.T) {
	router := NewManagementRouter(fakePinger{}, nil, time.Second)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProfilerIsMounted(t *testing.T) {
	router := NewManagementRouter(fakePinger{}, nil, time.Second)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ProfilerPath+"/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "goroutine") {
		t.Fatalf("index body missing goroutine profile link")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ProfilerPath+"/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("cmdline status = %d, want %d", rec.Code, http.StatusOK)
	}
}
