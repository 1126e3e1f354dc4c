// Package errors provides structured domain errors that map onto gRPC statuses.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Event validation errors
	CodeEventNameEmpty        Code = "EVENT_NAME_EMPTY"
	CodeEventTimestampInvalid Code = "EVENT_TIMESTAMP_INVALID"
	CodeEventIDInvalid        Code = "EVENT_ID_INVALID"

	// Storage errors
	CodeNotFound         Code = "EVENT_NOT_FOUND"
	CodeStoreUnavailable Code = "EVENT_STORE_UNAVAILABLE"

	// Transport errors
	CodeRateLimited Code = "RATE_LIMITED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeEventNameEmpty,
		CodeEventTimestampInvalid,
		CodeEventIDInvalid:
		return codes.InvalidArgument

	case CodeNotFound:
		return codes.NotFound

	case CodeRateLimited:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}
