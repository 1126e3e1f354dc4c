// Package server wires the event runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	eventv1 "github.com/louisbranch/eventline/api/gen/go/event/v1"
	"github.com/louisbranch/eventline/internal/platform/grpc/interceptors"
	grpcmeta "github.com/louisbranch/eventline/internal/platform/grpc/metadata"
	"github.com/louisbranch/eventline/internal/platform/httpmux"
	"github.com/louisbranch/eventline/internal/platform/telemetry/metrics"
	"github.com/louisbranch/eventline/internal/platform/timeouts"
	eventservice "github.com/louisbranch/eventline/internal/services/event/api/grpc/event"
	"github.com/louisbranch/eventline/internal/services/event/storage"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check name of the event API.
const ServiceName = "event.EventService"

// Config holds the server runtime settings.
type Config struct {
	// Addr is the gRPC listen address, host:port.
	Addr  string
	Store StoreConfig

	TLSCertFile string
	TLSKeyFile  string

	// ManagementAddr enables the health and metrics HTTP surface when set.
	ManagementAddr string

	// RateLimit caps accepted calls per second across all clients. Zero disables it.
	RateLimit float64
	RateBurst int
}

// Options carries collaborators that are not configuration.
type Options struct {
	Logger *zerolog.Logger
	// RequestIDGenerator overrides request id generation.
	RequestIDGenerator func() (string, error)
}

// Server hosts the event gRPC API, its management surface and the store.
type Server struct {
	cfg        Config
	logger     zerolog.Logger
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      storage.Store

	mgmtListener net.Listener
	mgmtServer   *http.Server

	closeOnce sync.Once
}

// New opens the store, binds the listeners and builds the gRPC server.
func New(ctx context.Context, cfg Config, opts Options) (*Server, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	creds, err := transportCredentials(cfg.TLSCertFile, cfg.TLSKeyFile)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	recorder := metrics.NewRecorder()
	if err := recorder.RegisterStoredEvents(store.Count, timeouts.StorePing); err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("register store metrics: %w", err)
	}

	unary := []grpc.UnaryServerInterceptor{
		grpcmeta.UnaryServerInterceptor(opts.RequestIDGenerator),
		recorder.UnaryServerInterceptor(),
		interceptors.UnaryLogging(logger),
		interceptors.UnaryRecovery(logger),
	}
	stream := []grpc.StreamServerInterceptor{
		grpcmeta.StreamServerInterceptor(opts.RequestIDGenerator),
		interceptors.StreamLogging(logger),
		interceptors.StreamRecovery(logger),
	}
	if cfg.RateLimit > 0 {
		bucket := interceptors.NewTokenBucket(cfg.RateLimit, cfg.RateBurst)
		unary = append(unary, interceptors.UnaryRateLimit(bucket))
		stream = append(stream, interceptors.StreamRateLimit(bucket))
	}

	serverOpts := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	}
	if creds != nil {
		serverOpts = append(serverOpts, grpc.Creds(creds))
	}
	grpcServer := grpc.NewServer(serverOpts...)

	healthServer := health.NewServer()
	eventv1.RegisterEventServiceServer(grpcServer, eventservice.NewService(store))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	srv := &Server{
		cfg:        cfg,
		logger:     logger,
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}

	if strings.TrimSpace(cfg.ManagementAddr) != "" {
		mgmtListener, err := net.Listen("tcp", cfg.ManagementAddr)
		if err != nil {
			srv.Close()
			return nil, fmt.Errorf("listen on management %s: %w", cfg.ManagementAddr, err)
		}
		srv.mgmtListener = mgmtListener
		srv.mgmtServer = &http.Server{
			Handler:           httpmux.NewManagementRouter(store, recorder.Registry(), timeouts.StorePing),
			ReadHeaderTimeout: timeouts.ReadHeader,
		}
	}
	return srv, nil
}

func transportCredentials(certFile, keyFile string) (credentials.TransportCredentials, error) {
	certFile = strings.TrimSpace(certFile)
	keyFile = strings.TrimSpace(keyFile)
	switch {
	case certFile == "" && keyFile == "":
		return nil, nil
	case certFile == "" || keyFile == "":
		return nil, errors.New("tls requires both a certificate and a key file")
	}
	creds, err := credentials.NewServerTLSFromFile(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load tls credentials: %w", err)
	}
	return creds, nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// ManagementAddr returns the management listener address, or "" when disabled.
func (s *Server) ManagementAddr() string {
	if s == nil || s.mgmtListener == nil {
		return ""
	}
	return s.mgmtListener.Addr().String()
}

// Run creates and serves an event server until context cancellation.
func Run(ctx context.Context, cfg Config, opts Options) error {
	srv, err := New(ctx, cfg, opts)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve runs the gRPC and management servers until ctx is cancelled or one
// of them fails, then shuts both down and closes the store.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	defer s.Close()

	s.logger.Info().
		Str("addr", s.Addr()).
		Str("management_addr", s.ManagementAddr()).
		Str("store", storeDriver(s.cfg.Store)).
		Bool("tls", s.cfg.TLSCertFile != "").
		Msg("event server listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})
	if s.mgmtServer != nil {
		g.Go(func() error {
			if err := s.mgmtServer.Serve(s.mgmtListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve management: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	err := g.Wait()
	s.logger.Info().Msg("event server stopped")
	return err
}

func (s *Server) shutdown() error {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	timer := time.NewTimer(timeouts.Shutdown)
	defer timer.Stop()
	select {
	case <-stopped:
	case <-timer.C:
		s.logger.Warn().Msg("graceful stop timed out; closing open connections")
		s.grpcServer.Stop()
	}

	if s.mgmtServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.mgmtServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown management: %w", err)
	}
	return nil
}

// Close releases server resources. It is safe to call more than once.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if s.health != nil {
			s.health.Shutdown()
		}
		if s.grpcServer != nil {
			s.grpcServer.Stop()
		}
		if s.listener != nil {
			_ = s.listener.Close()
		}
		if s.mgmtServer != nil {
			_ = s.mgmtServer.Close()
		}
		if s.mgmtListener != nil {
			_ = s.mgmtListener.Close()
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				s.logger.Error().Err(err).Msg("close event store")
			}
		}
	})
}

func storeDriver(cfg StoreConfig) string {
	if driver := strings.TrimSpace(cfg.Driver); driver != "" {
		return driver
	}
	return storage.DriverMemory
}
