package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name probes may pass in HealthCheckRequest.Service.
const ServiceName = "task.v1.TaskService"

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler reports the service as SERVING while the database answers pings.
type Handler struct {
	healthpb.UnimplementedHealthServer
	db  Pinger
	log *zap.Logger
}

func NewHandler(db Pinger, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("grpc health: database ping failed", zap.Error(err))
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
