package sales

import (
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AggregateTypeSale is the aggregate type for sale events
const AggregateTypeSale = "Sale"

// Sale event types
const (
	EventTypeSaleCreated  = "sale.created"
	EventTypeSaleClosed   = "sale.closed"
	EventTypeSaleReversed = "sale.reversed"
)

// SaleCreatedEvent is published after a sale is stored
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	Number    string          `json:"number"`
	OrderType OrderType       `json:"order_type"`
	Status    Status          `json:"status"`
	TableID   *uuid.UUID      `json:"table_id,omitempty"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewSaleCreatedEvent creates a SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, s.ID),
		Number:          s.Number,
		OrderType:       s.OrderType,
		Status:          s.Status,
		TableID:         s.TableID,
		ItemCount:       len(s.Items),
		Total:           s.Total,
	}
}

// SaleClosedEvent is published when a sale is paid
type SaleClosedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PeriodID      uuid.UUID       `json:"period_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
}

// NewSaleClosedEvent creates a SaleClosedEvent
func NewSaleClosedEvent(s *Sale) *SaleClosedEvent {
	e := &SaleClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleClosed, AggregateTypeSale, s.ID),
		Number:          s.Number,
		PaymentMethod:   s.PaymentMethod,
		Subtotal:        s.Subtotal,
		TaxAmount:       s.TaxAmount,
		Total:           s.Total,
	}
	if s.PeriodID != nil {
		e.PeriodID = *s.PeriodID
	}
	return e
}

// SaleReversedEvent is published when a sale is cancelled or voided
type SaleReversedEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	FromStatus Status          `json:"from_status"`
	Status     Status          `json:"status"`
	Reason     string          `json:"reason"`
	Total      decimal.Decimal `json:"total"`
}

// NewSaleReversedEvent creates a SaleReversedEvent
func NewSaleReversedEvent(s *Sale, from Status) *SaleReversedEvent {
	return &SaleReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleReversed, AggregateTypeSale, s.ID),
		Number:          s.Number,
		FromStatus:      from,
		Status:          s.Status,
		Reason:          s.CancelReason,
		Total:           s.Total,
	}
}
