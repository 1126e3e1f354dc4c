package interceptors

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/eventline/internal/platform/errors"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

// TokenBucket rejects calls once the shared token bucket is empty.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket allows rps calls per second with the given burst.
// A burst below one is raised to one.
func NewTokenBucket(rps float64, burst int) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Limit takes one token or fails. It never waits.
func (b *TokenBucket) Limit(context.Context) error {
	if b.limiter.Allow() {
		return nil
	}
	return fmt.Errorf("rate limit of %v requests per second exceeded", b.limiter.Limit())
}

// UnaryRateLimit rejects over-limit calls with a RATE_LIMITED domain error.
func UnaryRateLimit(bucket *TokenBucket) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := bucket.Limit(ctx); err != nil {
			return nil, rateLimited(info.FullMethod, err)
		}
		return handler(ctx, req)
	}
}

// StreamRateLimit is the streaming counterpart of UnaryRateLimit.
func StreamRateLimit(bucket *TokenBucket) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := bucket.Limit(ss.Context()); err != nil {
			return rateLimited(info.FullMethod, err)
		}
		return handler(srv, ss)
	}
}

func rateLimited(method string, err error) error {
	return apperrors.WithMetadata(apperrors.CodeRateLimited, err.Error(), map[string]string{"method": method}).ToGRPCStatus()
}
