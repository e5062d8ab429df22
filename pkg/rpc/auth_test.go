package rpc

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
)

func TestRequireAdminKeyUnaryRejectsMissingMetadata(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{AdminAPIKeys: []uuid.UUID{uuid.New()}}}
	interceptor := requireAdminKeyUnary(cfg)

	called := false
	_, err := interceptor(context.Background(), nil, nil, func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		return nil, nil
	})

	require.Error(t, err)
	assert.False(t, called)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestRequireAdminKeyUnaryRejectsWrongKey(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{AdminAPIKeys: []uuid.UUID{uuid.New()}}}
	interceptor := requireAdminKeyUnary(cfg)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(apiKeyMetadataKey, uuid.New().String()))
	_, err := interceptor(ctx, nil, nil, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})

	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestRequireAdminKeyUnaryAllowsRegisteredKey(t *testing.T) {
	key := uuid.New()
	cfg := &config.Config{Auth: config.AuthConfig{AdminAPIKeys: []uuid.UUID{key}}}
	interceptor := requireAdminKeyUnary(cfg)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(apiKeyMetadataKey, key.String()))
	resp, err := interceptor(ctx, nil, nil, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
