package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"clinicbook/backend/internal/ratelimit"
)

// RateLimitedMethods are the form submissions that create records.
var RateLimitedMethods = []string{
	BookingService_CreateBooking_FullMethodName,
	CareersService_SubmitApplication_FullMethodName,
}

// RequestTimeout bounds handlers whose caller did not set a deadline.
func RequestTimeout(timeout time.Duration) grpc.UnaryServerInterceptor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return handler(ctx, req)
	}
}

// RateLimit applies lim per peer host to the listed methods. A nil lim
// disables limiting.
func RateLimit(lim *ratelimit.Limiter, log *slog.Logger, methods ...string) grpc.UnaryServerInterceptor {
	if lim == nil {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			return handler(ctx, req)
		}
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "grpc.ratelimit"))

	limited := make(map[string]bool, len(methods))
	for _, m := range methods {
		limited[m] = true
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !limited[info.FullMethod] {
			return handler(ctx, req)
		}
		key := "unknown"
		if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
			key = ratelimit.HostKey(p.Addr.String())
		}
		if !lim.Allow(key) {
			log.Warn("rate limited", slog.String("peer", key), slog.String("method", info.FullMethod))
			return nil, status.Error(codes.ResourceExhausted, "too many requests")
		}
		return handler(ctx, req)
	}
}
