package errors

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain is the error domain for eventline errors.
const Domain = "github.com/louisbranch/eventline"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for templating
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error with metadata for message templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// GRPCStatus lets status.FromError and status.Code recognize domain errors.
func (e *Error) GRPCStatus() *status.Status {
	st, _ := status.FromError(e.ToGRPCStatus())
	return st
}

// ToGRPCStatus converts the error to a gRPC status carrying an ErrorInfo and
// a LocalizedMessage. The status message is the user-facing text; the
// internal message never leaves the process.
func (e *Error) ToGRPCStatus() error {
	grpcCode := e.Code.GRPCCode()
	userMessage := UserMessage(e.Code, e.Metadata)
	st := status.New(grpcCode, userMessage)

	withDetails, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: e.Metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  DefaultLocale,
			Message: userMessage,
		},
	)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// Reason extracts the ErrorInfo reason from a gRPC error, or "" when absent.
func Reason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
