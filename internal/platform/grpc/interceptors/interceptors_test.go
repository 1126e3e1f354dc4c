package interceptors

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/eventline/internal/platform/errors"
	grpcmeta "github.com/louisbranch/eventline/internal/platform/grpc/metadata"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/event.EventService/CreateEvent"}

func TestUnaryLoggingWritesFinishLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	interceptor := UnaryLogging(logger)

	ctx := grpcmeta.WithRequestID(context.Background(), "req-42")
	_, err := interceptor(ctx, nil, testInfo, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "missing")
	})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.NotFound)
	}

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["grpc.code"] != "NotFound" {
		t.Fatalf("grpc.code = %v, want NotFound", entry["grpc.code"])
	}
	if entry["grpc.method"] != "CreateEvent" {
		t.Fatalf("grpc.method = %v, want CreateEvent", entry["grpc.method"])
	}
}

func TestUnaryRecoveryReturnsInternal(t *testing.T) {
	var buf bytes.Buffer
	interceptor := UnaryRecovery(zerolog.New(&buf))

	_, err := interceptor(context.Background(), nil, testInfo, func(context.Context, any) (any, error) {
		panic("store exploded")
	})
	if status.Code(err) != codes.Internal {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.Internal)
	}
	if strings.Contains(status.Convert(err).Message(), "store exploded") {
		t.Fatal("panic value must not reach the caller")
	}
	if !strings.Contains(buf.String(), "store exploded") {
		t.Fatalf("log = %q, want panic value", buf.String())
	}
}

func TestUnaryRateLimitRejectsOverLimit(t *testing.T) {
	interceptor := UnaryRateLimit(NewTokenBucket(0.001, 2))
	handler := func(context.Context, any) (any, error) { return "ok", nil }

	for i := 0; i < 2; i++ {
		if _, err := interceptor(context.Background(), nil, testInfo, handler); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	_, err := interceptor(context.Background(), nil, testInfo, handler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.ResourceExhausted)
	}
	if reason := apperrors.Reason(err); reason != string(apperrors.CodeRateLimited) {
		t.Fatalf("reason = %q, want %q", reason, apperrors.CodeRateLimited)
	}
}

type fakeServerStream struct {
	grpc.ServerStream
}

func (fakeServerStream) Context() context.Context { return context.Background() }

func TestStreamRateLimitRejectsOverLimit(t *testing.T) {
	interceptor := StreamRateLimit(NewTokenBucket(0.001, 1))
	info := &grpc.StreamServerInfo{FullMethod: "/event.EventService/Watch"}
	calls := 0
	handler := func(any, grpc.ServerStream) error {
		calls++
		return nil
	}

	if err := interceptor(nil, fakeServerStream{}, info, handler); err != nil {
		t.Fatalf("first stream: %v", err)
	}
	err := interceptor(nil, fakeServerStream{}, info, handler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.ResourceExhausted)
	}
	if reason := apperrors.Reason(err); reason != string(apperrors.CodeRateLimited) {
		t.Fatalf("reason = %q, want %q", reason, apperrors.CodeRateLimited)
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func TestNewTokenBucketRaisesBurst(t *testing.T) {
	bucket := NewTokenBucket(1, 0)
	if got := bucket.limiter.Burst(); got != 1 {
		t.Fatalf("burst = %d, want 1", got)
	}
}
