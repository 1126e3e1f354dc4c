// Package interceptors assembles the server-side gRPC middleware chain.
package interceptors

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpcmeta "github.com/louisbranch/eventline/internal/platform/grpc/metadata"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// ZerologAdapter lets the go-grpc-middleware logging interceptor write
// through a zerolog logger.
func ZerologAdapter(logger zerolog.Logger) logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, level logging.Level, msg string, fields ...any) {
		l := logger.With().Fields(fields).Logger()
		switch level {
		case logging.LevelDebug:
			l.Debug().Msg(msg)
		case logging.LevelInfo:
			l.Info().Msg(msg)
		case logging.LevelWarn:
			l.Warn().Msg(msg)
		default:
			l.Error().Msg(msg)
		}
	})
}

// correlationFields attaches the request id and, when sampled, the trace id.
func correlationFields(ctx context.Context) logging.Fields {
	var fields logging.Fields
	if requestID := grpcmeta.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, "trace_id", sc.TraceID().String())
	}
	return fields
}

// UnaryLogging logs one line per finished unary call.
func UnaryLogging(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(
		ZerologAdapter(logger),
		logging.WithLogOnEvents(logging.FinishCall),
		logging.WithFieldsFromContext(correlationFields),
	)
}

// StreamLogging logs one line per finished stream.
func StreamLogging(logger zerolog.Logger) grpc.StreamServerInterceptor {
	return logging.StreamServerInterceptor(
		ZerologAdapter(logger),
		logging.WithLogOnEvents(logging.FinishCall),
		logging.WithFieldsFromContext(correlationFields),
	)
}
