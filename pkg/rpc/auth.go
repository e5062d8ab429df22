package rpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
)

const apiKeyMetadataKey = "x-api-key"

// apiKeyFromContext mirrors pkg/api's X-Api-Key header parsing: it
// extracts the x-api-key metadata entry and parses it as a UUID.
// checkAdminKey then requires that key to be in the admin key set.
func apiKeyFromContext(ctx context.Context) (uuid.UUID, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.UUID{}, status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get(apiKeyMetadataKey)
	if len(vals) == 0 {
		return uuid.UUID{}, status.Error(codes.Unauthenticated, "missing x-api-key metadata")
	}
	key, err := uuid.Parse(vals[0])
	if err != nil {
		return uuid.UUID{}, status.Error(codes.Unauthenticated, "malformed x-api-key metadata")
	}
	return key, nil
}

func checkAdminKey(cfg *config.Config, ctx context.Context) error {
	key, err := apiKeyFromContext(ctx)
	if err != nil {
		return err
	}
	if !cfg.HasAdminKey(key) {
		return status.Error(codes.Unauthenticated, "unrecognized API key")
	}
	return nil
}

// requireAdminKeyUnary builds a unary interceptor rejecting calls
// whose x-api-key metadata entry isn't in the admin key set, the
// grpc-surface equivalent of pkg/api's requireAdminKey middleware.
func requireAdminKeyUnary(cfg *config.Config) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if err := checkAdminKey(cfg, ctx); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// requireAdminKeyStream is the streaming-call analog of
// requireAdminKeyUnary — StreamAlerts doesn't go through
// grpc.UnaryServerInterceptor.
func requireAdminKeyStream(cfg *config.Config) grpc.StreamServerInterceptor {
	return func(srv interface{}, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := checkAdminKey(cfg, stream.Context()); err != nil {
			return err
		}
		return handler(srv, stream)
	}
}
