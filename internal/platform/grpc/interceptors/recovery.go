package interceptors

import (
	"context"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	grpcmeta "github.com/louisbranch/eventline/internal/platform/grpc/metadata"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func recoveryHandler(logger zerolog.Logger) recovery.Option {
	return recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		logger.Error().
			Str("request_id", grpcmeta.RequestIDFromContext(ctx)).
			Interface("panic", p).
			Bytes("stack", debug.Stack()).
			Msg("recovered from handler panic")
		return status.Error(codes.Internal, "internal error")
	})
}

// UnaryRecovery turns handler panics into Internal errors and logs the stack.
func UnaryRecovery(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(recoveryHandler(logger))
}

// StreamRecovery is the streaming counterpart of UnaryRecovery.
func StreamRecovery(logger zerolog.Logger) grpc.StreamServerInterceptor {
	return recovery.StreamServerInterceptor(recoveryHandler(logger))
}
