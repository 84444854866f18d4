package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestSalesMetrics_Handle(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewSalesMetrics(provider.Meter("test"))
	require.NoError(t, err)
	ctx := context.Background()

	id := uuid.New()
	events := []shared.DomainEvent{
		&sales.SaleCreatedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeSaleCreated, sales.AggregateTypeSale, id),
			OrderType:       sales.OrderTypeDineIn,
		},
		&sales.SaleClosedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeSaleClosed, sales.AggregateTypeSale, id),
			PaymentMethod:   sales.PaymentCash,
			Total:           decimal.RequireFromString("23.00"),
		},
		&sales.SaleReversedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(sales.EventTypeSaleReversed, sales.AggregateTypeSale, id),
			Status:          sales.StatusVoided,
		},
		&kitchen.OrderStatusChangedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(kitchen.EventTypeOrderStatusChanged, kitchen.AggregateTypeKitchenOrder, uuid.New()),
			To:              kitchen.StatusReady,
		},
	}
	for _, e := range events {
		require.NoError(t, m.Handle(ctx, e))
	}

	data := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, data["sales_created_total"]))
	assert.Equal(t, int64(1), sumOf(t, data["sales_closed_total"]))
	assert.Equal(t, int64(1), sumOf(t, data["sales_reversed_total"]))
	assert.Equal(t, int64(1), sumOf(t, data["kitchen_status_changes_total"]))

	hist, ok := data["sales_ticket_amount"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, 23.0, hist.DataPoints[0].Sum)
}

func TestSalesMetrics_EventTypes(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	m, err := NewSalesMetrics(provider.Meter("test"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"sale.created", "sale.closed", "sale.reversed", "kitchen.order.status_changed",
	}, m.EventTypes())
}
