package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/heat-tracker/internal/common"
)

// RequestIDHeader carries the caller's request ID in gRPC metadata.
const RequestIDHeader = "x-request-id"

// UnaryInterceptor tags the context with a request ID, maps application
// errors onto gRPC status codes and logs every call.
func UnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		rid := requestIDFromMetadata(ctx)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx = common.WithRequestID(ctx, rid)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, rid))

		resp, err := handler(ctx, req)
		if err != nil {
			err = common.ToStatus(err)
			logger.Error("grpc.call.failed",
				"method", info.FullMethod,
				"request_id", rid,
				"code", status.Code(err).String(),
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return nil, err
		}
		logger.Info("grpc.call.ok",
			"method", info.FullMethod,
			"request_id", rid,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, nil
	}
}

func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(RequestIDHeader); len(v) > 0 {
		return v[0]
	}
	return ""
}
