package cashier

import (
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypePeriod is the aggregate type for period events
const AggregateTypePeriod = "SalesPeriod"

// Period event types
const (
	EventTypePeriodOpened = "period.opened"
	EventTypePeriodClosed = "period.closed"
)

// PeriodOpenedEvent is published when a drawer is opened
type PeriodOpenedEvent struct {
	shared.BaseDomainEvent
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

// NewPeriodOpenedEvent creates a PeriodOpenedEvent
func NewPeriodOpenedEvent(p *SalesPeriod) *PeriodOpenedEvent {
	return &PeriodOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodOpened, AggregateTypePeriod, p.ID),
		OpeningAmount:   p.OpeningAmount,
	}
}

// PeriodClosedEvent carries the reconciliation result
type PeriodClosedEvent struct {
	shared.BaseDomainEvent
	ExpectedCash decimal.Decimal `json:"expected_cash"`
	CountedCash  decimal.Decimal `json:"counted_cash"`
	Difference   decimal.Decimal `json:"difference"`
}

// NewPeriodClosedEvent creates a PeriodClosedEvent
func NewPeriodClosedEvent(p *SalesPeriod) *PeriodClosedEvent {
	return &PeriodClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodClosed, AggregateTypePeriod, p.ID),
		ExpectedCash:    p.ExpectedCash,
		CountedCash:     p.CountedCash,
		Difference:      p.Difference,
	}
}
