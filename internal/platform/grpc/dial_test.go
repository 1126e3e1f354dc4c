package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialWithHealthSuccess(t *testing.T) {
	addr, _ := startHealthServer(t, grpc_health_v1.HealthCheckResponse_SERVING)

	conn, err := DialWithHealth(context.Background(), addr, testService, 2*time.Second, nil)
	if err != nil {
		t.Fatalf("dial with health: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
}

func TestDialWithHealthTimeoutBoundsWait(t *testing.T) {
	addr, _ := startHealthServer(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	start := time.Now()
	conn, err := DialWithHealth(context.Background(), addr, testService, 150*time.Millisecond, nil, ClientDialOptions(nil)...)
	if err == nil {
		_ = conn.Close()
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("expected timeout to bound health wait, took %v", elapsed)
	}

	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageHealth {
		t.Fatalf("err = %v, want health stage DialError", err)
	}
}

func TestDialWithHealthRequiresAddress(t *testing.T) {
	_, err := DialWithHealth(context.Background(), "", "", time.Second, nil)
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageConnect {
		t.Fatalf("err = %v, want connect stage DialError", err)
	}
}

func TestDialErrorFormatting(t *testing.T) {
	err := &DialError{Stage: DialStageHealth, Err: errors.New("not serving")}
	if !strings.Contains(err.Error(), "health") || !strings.Contains(err.Error(), "not serving") {
		t.Fatalf("error = %q", err.Error())
	}

	var nilErr *DialError
	if nilErr.Error() != "gRPC dial error" {
		t.Fatalf("nil error = %q", nilErr.Error())
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap")
	}
}
