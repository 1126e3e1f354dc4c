// Package event implements the event.EventService gRPC API.
package event

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	eventv1 "github.com/louisbranch/eventline/api/gen/go/event/v1"
	apperrors "github.com/louisbranch/eventline/internal/platform/errors"
	"github.com/louisbranch/eventline/internal/services/event/storage"
	"go.einride.tech/aip/validation"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service exposes event.EventService operations.
type Service struct {
	eventv1.UnimplementedEventServiceServer
	store storage.EventStore
	clock func() time.Time
}

// NewService creates an event service backed by store.
func NewService(store storage.EventStore) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// CreateEvent stores one event and returns it with its assigned id.
func (s *Service) CreateEvent(ctx context.Context, in *eventv1.CreateEventRequest) (*eventv1.Event, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "create event request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "event store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	var v validation.MessageValidator
	var reason apperrors.Code
	var metadata map[string]string
	name := in.GetName()
	if strings.TrimSpace(name) == "" {
		v.AddFieldViolation("name", "must not be empty")
		reason = apperrors.CodeEventNameEmpty
	}
	timestamp := s.now()
	if raw := in.GetTimestamp(); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			v.AddFieldViolation("timestamp", "must be an RFC 3339 timestamp: %v", err)
			if reason == "" {
				reason = apperrors.CodeEventTimestampInvalid
				metadata = map[string]string{"timestamp": raw}
			}
		} else {
			timestamp = parsed.UTC()
		}
	}
	if err := v.Err(); err != nil {
		return nil, invalidArgument(err, reason, metadata)
	}

	event, err := s.store.Create(ctx, name, timestamp)
	if err != nil {
		return nil, storeError(err, "create event", nil)
	}
	return eventToProto(event), nil
}

// GetEvent returns one event by id.
func (s *Service) GetEvent(ctx context.Context, in *eventv1.GetEventRequest) (*eventv1.Event, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get event request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "event store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	id := in.GetId()
	if id <= 0 {
		var v validation.MessageValidator
		v.AddFieldViolation("id", "must be greater than zero")
		return nil, invalidArgument(v.Err(), apperrors.CodeEventIDInvalid, nil)
	}

	event, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "get event", map[string]string{"id": strconv.FormatInt(id, 10)})
	}
	return eventToProto(event), nil
}

func (s *Service) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// invalidArgument adds an ErrorInfo carrying reason to the BadRequest status
// produced by the validator.
func invalidArgument(err error, reason apperrors.Code, metadata map[string]string) error {
	st := status.Convert(err)
	withInfo, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(reason),
		Domain:   apperrors.Domain,
		Metadata: metadata,
	})
	if detailErr != nil {
		return st.Err()
	}
	return withInfo.Err()
}

func storeError(err error, op string, metadata map[string]string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.WithMetadata(apperrors.CodeNotFound, op+": not found", metadata).ToGRPCStatus()
	case errors.Is(err, storage.ErrUnavailable):
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, op, err).ToGRPCStatus()
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, op, err).ToGRPCStatus()
	}
}

func eventToProto(event storage.Event) *eventv1.Event {
	return &eventv1.Event{
		Id:        event.ID,
		Name:      event.Name,
		Timestamp: storage.FormatTimestamp(event.Timestamp),
	}
}
