package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthCheck reports whether storage is reachable.
type HealthCheck func(ctx context.Context) error

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	log    logrus.FieldLogger
}

func NewGRPCServer(log logrus.FieldLogger) *GRPCServer {
	s := &GRPCServer{
		health: health.NewServer(),
		log:    log.WithField("component", "grpc"),
	}
	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(s.unaryInterceptor),
	)
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	return s
}

func (s *GRPCServer) Start(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	s.log.Infof("gRPC server listening on %s", lis.Addr())
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// SetServing flips the overall health status.
func (s *GRPCServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// WatchHealth runs check every interval and publishes the result until ctx
// is done.
func (s *GRPCServer) WatchHealth(ctx context.Context, check HealthCheck, interval time.Duration) {
	probe := func() {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		if err := check(checkCtx); err != nil {
			s.log.WithError(err).Warn("storage health check failed")
			s.SetServing(false)
			return
		}
		s.SetServing(true)
	}

	probe()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}

func (s *GRPCServer) unaryInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	s.log.WithField("method", info.FullMethod).Debug("gRPC call")
	return handler(ctx, req)
}
