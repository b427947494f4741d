package middleware

import (
	"context"
	"net"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// RateLimitPerIP rejects calls with ResourceExhausted once the peer address
// runs out of tokens. Calls without a peer are rejected too.
func RateLimitPerIP(limiter *ratelimit.PerKey) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		_ *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		p, ok := peer.FromContext(ctx)
		if !ok || p.Addr == nil {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}

		host, _, err := net.SplitHostPort(p.Addr.String())
		if err != nil {
			host = p.Addr.String()
		}

		if !limiter.Allow(host) {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}
