package middleware

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDMetadataKey = "x-request-id"

// UnaryLogger logs every unary gRPC call with its code, latency and request id.
func UnaryLogger(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		res, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		}
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(requestIDMetadataKey); len(ids) > 0 {
				fields = append(fields, zap.String("request_id", ids[0]))
			}
		}

		if err != nil {
			log.Warn("grpc call failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("grpc call served", fields...)
		}
		return res, err
	}
}
