package storage

import (
	"context"
	"time"

	catalogapp "github.com/restopos/backend/internal/application/catalog"
	"github.com/restopos/backend/internal/domain/shared"
)

// ErrStorageDisabled is returned for image operations when no bucket is configured
var ErrStorageDisabled = shared.NewDomainError(shared.CodeInvalidState, "Image storage is not configured")

// DisabledImageStorage rejects every image operation
type DisabledImageStorage struct{}

// PresignUpload always fails with ErrStorageDisabled
func (DisabledImageStorage) PresignUpload(context.Context, string, string) (string, time.Time, error) {
	return "", time.Time{}, ErrStorageDisabled
}

// PresignDownload always fails with ErrStorageDisabled
func (DisabledImageStorage) PresignDownload(context.Context, string) (string, time.Time, error) {
	return "", time.Time{}, ErrStorageDisabled
}

var _ catalogapp.ImageStorage = DisabledImageStorage{}
