// Package grpc serves the standard gRPC health service. The service reports
// SERVING only while the voice catalog holds at least one voice.
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/michsethowusu/kasanoma/internal/voice"
)

// ServiceName is the health service name reported for synthesis.
const ServiceName = "kasanoma.tts"

// Server is the gRPC server.
type Server struct {
	host   string
	port   int
	grpc   *grpc.Server
	health *health.Server
}

// NewServer creates a server whose health follows the voice catalog.
func NewServer(host string, port int, voices *voice.Manager) *Server {
	s := &Server{
		host:   host,
		port:   port,
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)

	s.update(voices.Catalog())
	voices.OnRescan(s.update)

	return s
}

// GRPC returns the underlying grpc.Server.
func (s *Server) GRPC() *grpc.Server {
	return s.grpc
}

func (s *Server) update(catalog *voice.Catalog) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if catalog.VoiceCount() > 0 {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve serves on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		slog.Info("Shutting down gRPC server")
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}()

	slog.Info("gRPC server listening", "addr", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil {
		return fmt.Errorf("grpc: server failed: %w", err)
	}

	return nil
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lis, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		return fmt.Errorf("grpc: failed to listen: %w", err)
	}

	return s.Serve(ctx, lis)
}
