package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() config.StorageConfig {
	return config.StorageConfig{
		Enabled:         true,
		Endpoint:        "localhost:9000",
		Bucket:          "menu-images",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		UsePathStyle:    true,
		PresignExpiry:   10 * time.Minute,
	}
}

func TestNewS3ImageStorage_Validation(t *testing.T) {
	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := testConfig()
		cfg.Bucket = ""
		_, err := NewS3ImageStorage(cfg, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing credentials return error", func(t *testing.T) {
		cfg := testConfig()
		cfg.SecretAccessKey = ""
		_, err := NewS3ImageStorage(cfg, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials are required")
	})

	t.Run("default presign expiry is 15 minutes", func(t *testing.T) {
		cfg := testConfig()
		cfg.PresignExpiry = 0
		s, err := NewS3ImageStorage(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, s.expiry)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", normalizeEndpoint("localhost:9000"))
	assert.Equal(t, "https://s3.example.com", normalizeEndpoint("https://s3.example.com"))
	assert.Equal(t, "", normalizeEndpoint("  "))
}

func TestS3ImageStorage_Presign(t *testing.T) {
	s, err := NewS3ImageStorage(testConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()
	key := "products/6f1c/photo.jpg"

	t.Run("upload URL is path style and signed", func(t *testing.T) {
		raw, expiresAt, err := s.PresignUpload(ctx, key, "image/jpeg")
		require.NoError(t, err)
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", u.Host)
		assert.True(t, strings.HasPrefix(u.Path, "/menu-images/products/"))
		assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("download URL", func(t *testing.T) {
		raw, _, err := s.PresignDownload(ctx, key)
		require.NoError(t, err)
		assert.Contains(t, raw, "photo.jpg")
	})

	t.Run("empty key returns error", func(t *testing.T) {
		_, _, err := s.PresignUpload(ctx, "", "image/png")
		require.Error(t, err)
		_, _, err = s.PresignDownload(ctx, "")
		require.Error(t, err)
	})
}

func TestDisabledImageStorage(t *testing.T) {
	_, _, err := DisabledImageStorage{}.PresignUpload(context.Background(), "k", "image/png")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeInvalidState, domainErr.Code)
}
