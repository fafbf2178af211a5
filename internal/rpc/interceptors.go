package rpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryLogger returns an interceptor that records every unary call with its
// full method, status code and latency.
func UnaryLogger(logger *zap.Logger) grpc.UnaryServerInterceptor {
	logger = logger.Named("grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(logger, info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}

// StreamLogger returns an interceptor that records every stream once it
// completes.
func StreamLogger(logger *zap.Logger) grpc.StreamServerInterceptor {
	logger = logger.Named("grpc")
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		logCall(logger, info.FullMethod, status.Code(err), time.Since(start))
		return err
	}
}

func logCall(logger *zap.Logger, method string, code codes.Code, duration time.Duration) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("code", code.String()),
		zap.Duration("duration", duration),
	}
	switch code {
	case codes.OK, codes.Canceled:
		logger.Info("rpc", fields...)
	case codes.Internal, codes.Unknown, codes.DataLoss:
		logger.Error("rpc", fields...)
	default:
		logger.Warn("rpc", fields...)
	}
}
