package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptorCountsByCode(t *testing.T) {
	recorder := NewRecorder()
	interceptor := recorder.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/event.EventService/GetEvent"}

	_, _ = interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	_, _ = interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "missing")
	})
	_, _ = interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "missing")
	})

	if got := testutil.ToFloat64(recorder.rpcTotal.WithLabelValues(info.FullMethod, "OK")); got != 1 {
		t.Fatalf("OK count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(recorder.rpcTotal.WithLabelValues(info.FullMethod, "NotFound")); got != 2 {
		t.Fatalf("NotFound count = %v, want 2", got)
	}
}

func TestRegisterStoredEvents(t *testing.T) {
	recorder := NewRecorder()
	var fail bool
	err := recorder.RegisterStoredEvents(func(context.Context) (int64, error) {
		if fail {
			return 0, errors.New("store down")
		}
		return 7, nil
	}, time.Second)
	if err != nil {
		t.Fatalf("register gauge: %v", err)
	}

	if got := gatherValue(t, recorder, "eventline_stored_events"); got != 7 {
		t.Fatalf("stored events = %v, want 7", got)
	}
	fail = true
	if got := gatherValue(t, recorder, "eventline_stored_events"); got != -1 {
		t.Fatalf("stored events = %v, want -1", got)
	}
}

func TestRegisterStoredEventsTwiceFails(t *testing.T) {
	recorder := NewRecorder()
	count := func(context.Context) (int64, error) { return 0, nil }
	if err := recorder.RegisterStoredEvents(count, time.Second); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := recorder.RegisterStoredEvents(count, time.Second); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestObserveRPCNilRecorder(t *testing.T) {
	var recorder *Recorder
	recorder.ObserveRPC("/x", nil, time.Millisecond)
}

func gatherValue(t *testing.T, recorder *Recorder, name string) float64 {
	t.Helper()
	families, err := recorder.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		metrics := family.GetMetric()
		if len(metrics) != 1 {
			t.Fatalf("%s series = %d, want 1", name, len(metrics))
		}
		return metrics[0].GetGauge().GetValue()
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}
