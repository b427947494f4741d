package server

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	grpcadapter "github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/grpc"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/ratelimit"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func startBuf(t *testing.T, db pinger) (healthpb.HealthClient, context.CancelFunc, <-chan error) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, lis, grpcadapter.NewHandler(db, zap.NewNop()),
			ratelimit.NewPerKey(100, 100, 100, time.Hour), zap.NewNop())
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn), cancel, done
}

func TestServe_HealthOverWire(t *testing.T) {
	client, cancel, done := startBuf(t, pinger{})
	defer cancel()

	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: grpcadapter.ServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	client, cancel, _ := startBuf(t, pinger{err: errors.New("refused")})
	defer cancel()

	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestStartGRPCServer_BadAddress(t *testing.T) {
	err := StartGRPCServer(context.Background(), "not-an-address", grpcadapter.NewHandler(pinger{}, zap.NewNop()),
		ratelimit.NewPerKey(1, 1, 1, time.Hour), zap.NewNop())
	require.Error(t, err)
}
