package rpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/xtding233/ordercalc/internal/metrics"
	"github.com/xtding233/ordercalc/internal/platform/observability"
)

// NewGRPCServer builds a grpc.Server with the calculator and health services.
func NewGRPCServer(logger *zap.Logger, m *metrics.ServerMetrics, defaultRegion string) *grpc.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryInterceptor(logger, m)))
	RegisterOrderCalculatorServer(s, NewServer(defaultRegion, m))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s
}

// UnaryInterceptor logs every call and records its latency.
func UnaryInterceptor(logger *zap.Logger, m *metrics.ServerMetrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(observability.WithLogger(ctx, logger), req)
		code := status.Code(err)
		elapsed := time.Since(start)

		m.Observe(info.FullMethod, code.String(), elapsed)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", elapsed),
		}
		if err != nil {
			logger.Warn("grpc request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Info("grpc request", fields...)
		}
		return resp, err
	}
}
