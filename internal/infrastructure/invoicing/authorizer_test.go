package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validKey() string {
	return sales.GenerateAccessKey(sales.AccessKeyInput{
		IssuedAt:          time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		RUC:               "1790012345001",
		Environment:       "1",
		EstablishmentCode: "001",
		EmissionPoint:     "002",
		Sequential:        42,
		Seed:              uuid.MustParse("6f1c2a7e-0d4b-4c39-9a57-3f1f0f2b8c11"),
	})
}

func TestCheckAccessKey(t *testing.T) {
	key := validKey()
	require.Len(t, key, AccessKeyLength)
	assert.NoError(t, CheckAccessKey(key))

	t.Run("wrong length", func(t *testing.T) {
		assert.ErrorIs(t, CheckAccessKey(key[:48]), ErrMalformedAccessKey)
	})

	t.Run("non digit", func(t *testing.T) {
		assert.ErrorIs(t, CheckAccessKey("X"+key[1:]), ErrMalformedAccessKey)
	})

	t.Run("bad check digit", func(t *testing.T) {
		last := key[48] - '0'
		tampered := key[:48] + string(rune('0'+(last+1)%10))
		assert.ErrorIs(t, CheckAccessKey(tampered), ErrMalformedAccessKey)
	})
}

func TestOfflineAuthorizer_Authorize(t *testing.T) {
	a := NewOfflineAuthorizer(zap.NewNop())
	ctx := context.Background()

	status, err := a.Authorize(ctx, &sales.Invoice{Number: "001-002-000000042", AccessKey: validKey()})
	require.NoError(t, err)
	assert.Equal(t, sales.SRIStatusOffline, status)

	status, err = a.Authorize(ctx, &sales.Invoice{Number: "001-002-000000043", AccessKey: "123"})
	require.NoError(t, err)
	assert.Equal(t, sales.SRIStatusRejected, status)
}
