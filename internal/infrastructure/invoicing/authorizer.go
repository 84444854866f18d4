// Package invoicing talks to the tax authority on behalf of issued invoices.
// Only offline emission is supported: invoices keep the offline status and
// their access key is validated locally.
package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/restopos/backend/internal/domain/sales"
	"go.uber.org/zap"
)

// AccessKeyLength is the number of digits in an access key
const AccessKeyLength = 49

// ErrMalformedAccessKey is returned for keys that fail the local checks
var ErrMalformedAccessKey = errors.New("malformed access key")

// CheckAccessKey verifies the length, the digits and the modulo 11 check digit
func CheckAccessKey(key string) error {
	if len(key) != AccessKeyLength {
		return fmt.Errorf("%w: expected %d digits, got %d", ErrMalformedAccessKey, AccessKeyLength, len(key))
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return fmt.Errorf("%w: non-digit at position %d", ErrMalformedAccessKey, i+1)
		}
	}
	want := sales.Modulo11(key[:AccessKeyLength-1])
	if got := int(key[AccessKeyLength-1] - '0'); got != want {
		return fmt.Errorf("%w: check digit %d, expected %d", ErrMalformedAccessKey, got, want)
	}
	return nil
}

// OfflineAuthorizer records invoices for later submission
type OfflineAuthorizer struct {
	logger *zap.Logger
}

// NewOfflineAuthorizer creates an OfflineAuthorizer
func NewOfflineAuthorizer(logger *zap.Logger) *OfflineAuthorizer {
	return &OfflineAuthorizer{logger: logger}
}

// Authorize keeps a well-formed invoice offline and rejects a malformed one
func (a *OfflineAuthorizer) Authorize(_ context.Context, invoice *sales.Invoice) (sales.SRIStatus, error) {
	if err := CheckAccessKey(invoice.AccessKey); err != nil {
		a.logger.Warn("Invoice rejected locally",
			zap.String("invoice_id", invoice.ID.String()),
			zap.String("number", invoice.Number),
			zap.Error(err))
		return sales.SRIStatusRejected, nil
	}
	a.logger.Debug("Invoice kept for offline emission",
		zap.String("number", invoice.Number),
		zap.String("access_key", invoice.AccessKey))
	return sales.SRIStatusOffline, nil
}
