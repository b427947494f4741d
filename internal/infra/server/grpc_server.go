package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/grpc/middleware"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/ratelimit"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const stopTimeout = 5 * time.Second

// StartGRPCServer listens on addr and serves until ctx is cancelled.
func StartGRPCServer(ctx context.Context, addr string, health healthpb.HealthServer, limiter *ratelimit.PerKey, logger *zap.Logger) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, lis, health, limiter, logger)
}

// Serve runs the gRPC server on lis with the unary interceptor chain and
// stops it gracefully once ctx is done.
func Serve(ctx context.Context, lis net.Listener, health healthpb.HealthServer, limiter *ratelimit.PerKey, logger *zap.Logger) error {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ChainUnaryServer(logger, limiter)),
	)

	healthpb.RegisterHealthServer(grpcServer, health)
	grpc_prometheus.Register(grpcServer)
	reflection.Register(grpcServer)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("ctx cancelled, stopping gRPC server")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-stopCtx.Done():
		grpcServer.Stop()
	case <-done:
	}
	logger.Info("gRPC server stopped")
	return nil
}
