// Package service exposes a compute function registry over Arrow Flight.
//
// The service is a thin remote surface for the dispatch layer in
// github.com/hugr-lab/compute-go: DoAction serves catalog discovery and
// scalar calls, DoExchange streams record batches through a unary
// function. Kernel execution is wrapped in panic recovery so registered
// kernels cannot crash the server.
package service

import (
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	compute "github.com/hugr-lab/compute-go"
	"github.com/hugr-lab/compute-go/auth"
)

// Config contains configuration for the compute Flight service.
type Config struct {
	// Registry maps function names to kernels.
	// OPTIONAL: Uses compute.DefaultRegistry() if nil.
	Registry compute.FunctionRegistry

	// Allocator for Arrow memory management.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger

	// Auth provides authentication logic.
	// OPTIONAL: If nil, no authentication (all requests allowed).
	Auth auth.Authenticator

	// MaxMessageSize sets maximum gRPC message size in bytes.
	// OPTIONAL: If 0, uses gRPC default (4MB).
	MaxMessageSize int
}

// Server implements the Flight service handlers.
// Embeds BaseFlightServer for forward compatibility with protocol changes.
type Server struct {
	flight.BaseFlightServer

	registry  compute.FunctionRegistry
	allocator memory.Allocator
	logger    *slog.Logger
}

// NewServer creates a compute Flight server, filling optional Config
// fields with defaults.
func NewServer(cfg Config) *Server {
	registry := cfg.Registry
	if registry == nil {
		registry = compute.DefaultRegistry()
	}

	allocator := cfg.Allocator
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		registry:  registry,
		allocator: allocator,
		logger:    logger,
	}
}

// Register registers the Flight service on the provided gRPC server.
// Does NOT start the gRPC server; the caller controls lifecycle via
// grpcServer.Serve().
func Register(grpcServer *grpc.Server, srv *Server) {
	flight.RegisterFlightServiceServer(grpcServer, srv)
}

// ServerOptions returns gRPC server options with authentication
// interceptors and message size limits per the config. Use when creating
// the gRPC server:
//
//	opts := service.ServerOptions(cfg)
//	grpcServer := grpc.NewServer(opts...)
//	service.Register(grpcServer, service.NewServer(cfg))
func ServerOptions(cfg Config) []grpc.ServerOption {
	var opts []grpc.ServerOption

	if cfg.Auth != nil {
		opts = append(opts,
			grpc.UnaryInterceptor(auth.UnaryServerInterceptor(cfg.Auth)),
			grpc.StreamInterceptor(auth.StreamServerInterceptor(cfg.Auth)),
		)
	}

	if cfg.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(cfg.MaxMessageSize),
			grpc.MaxSendMsgSize(cfg.MaxMessageSize),
		)
	}

	return opts
}

// execCtx builds the per-request execution context handed to the dispatch
// layer.
func (s *Server) execCtx() *compute.ExecCtx {
	return &compute.ExecCtx{
		Alloc:    s.allocator,
		Registry: s.registry,
		Logger:   s.logger,
	}
}
