// Package grpc serves the standard gRPC health protocol, reporting SERVING
// only while the session store and the catalog database both answer.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "filesmanager"

// Checker reports dependency liveness.
type Checker interface {
	Alive(ctx context.Context) services.Status
}

type HealthServer struct {
	address  string
	interval time.Duration
	checker  Checker
	logger   logging.Logger
	health   *health.Server
}

func NewHealthServer(address string, interval time.Duration, l logging.Logger, c Checker) *HealthServer {
	return &HealthServer{
		address:  address,
		interval: interval,
		checker:  c,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.refresh(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// refresh probes the dependencies once and publishes the result.
func (s *HealthServer) refresh(ctx context.Context) {
	st := s.checker.Alive(ctx)

	serving := healthpb.HealthCheckResponse_SERVING
	if !st.Healthy() {
		serving = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn(ctx, "dependency check failed", "redis", st.Redis, "db", st.DB)
	}

	s.health.SetServingStatus("", serving)
	s.health.SetServingStatus(ServiceName, serving)
}
