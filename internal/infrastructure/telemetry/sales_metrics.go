package telemetry

import (
	"context"

	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// SalesMetrics counts sales and kitchen activity from domain events
type SalesMetrics struct {
	created        *Counter
	closed         *Counter
	reversed       *Counter
	ticketAmount   *Histogram
	kitchenChanges *Counter
}

// NewSalesMetrics creates the sales instruments on meter
func NewSalesMetrics(meter metric.Meter) (*SalesMetrics, error) {
	created, err := NewCounter(meter, "sales_created_total", "Sales opened or paid at creation", "{sale}")
	if err != nil {
		return nil, err
	}
	closed, err := NewCounter(meter, "sales_closed_total", "Sales paid", "{sale}")
	if err != nil {
		return nil, err
	}
	reversed, err := NewCounter(meter, "sales_reversed_total", "Sales cancelled or voided", "{sale}")
	if err != nil {
		return nil, err
	}
	ticket, err := NewHistogram(meter, "sales_ticket_amount", "Total of paid sales", "{currency}", TicketAmountBuckets)
	if err != nil {
		return nil, err
	}
	kitchenChanges, err := NewCounter(meter, "kitchen_status_changes_total", "Kitchen order transitions by target status", "{change}")
	if err != nil {
		return nil, err
	}
	return &SalesMetrics{
		created:        created,
		closed:         closed,
		reversed:       reversed,
		ticketAmount:   ticket,
		kitchenChanges: kitchenChanges,
	}, nil
}

// EventTypes implements shared.EventHandler
func (m *SalesMetrics) EventTypes() []string {
	return []string{
		sales.EventTypeSaleCreated,
		sales.EventTypeSaleClosed,
		sales.EventTypeSaleReversed,
		kitchen.EventTypeOrderStatusChanged,
	}
}

// Handle implements shared.EventHandler
func (m *SalesMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *sales.SaleCreatedEvent:
		m.created.Inc(ctx, AttrOrderType.String(string(e.OrderType)))
	case *sales.SaleClosedEvent:
		method := AttrPaymentMethod.String(string(e.PaymentMethod))
		m.closed.Inc(ctx, method)
		m.ticketAmount.Record(ctx, e.Total.InexactFloat64(), method)
	case *sales.SaleReversedEvent:
		m.reversed.Inc(ctx, AttrSaleStatus.String(string(e.Status)))
	case *kitchen.OrderStatusChangedEvent:
		m.kitchenChanges.Inc(ctx, AttrKitchenStatus.String(string(e.To)))
	}
	return nil
}

var _ shared.EventHandler = (*SalesMetrics)(nil)
