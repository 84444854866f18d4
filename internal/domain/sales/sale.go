package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale is the aggregate root for an order and its payment
type Sale struct {
	shared.BaseAggregateRoot
	Number           string
	OrderType        OrderType
	Status           Status
	TableID          *uuid.UUID
	PeriodID         *uuid.UUID
	UserID           uuid.UUID
	CustomerName     string
	CustomerIDNumber string
	PaymentMethod    PaymentMethod
	AmountReceived   decimal.Decimal
	ChangeAmount     decimal.Decimal
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	DiscountAmount   decimal.Decimal
	Total            decimal.Decimal
	CostTotal        decimal.Decimal
	Notes            string
	ClosedAt         *time.Time
	CancelledAt      *time.Time
	CancelledBy      *uuid.UUID
	CancelReason     string
	Items            []SaleItem
}

// Header is the non-line data of a new sale
type Header struct {
	Number           string
	OrderType        OrderType
	TableID          *uuid.UUID
	UserID           uuid.UUID
	CustomerName     string
	CustomerIDNumber string
	Notes            string
}

// Payment settles a sale. For cash AmountReceived may exceed the total and
// the difference is returned as change.
type Payment struct {
	Method         PaymentMethod
	AmountReceived decimal.Decimal
}

// NewSale creates an open sale without lines
func NewSale(h Header) (*Sale, error) {
	if strings.TrimSpace(h.Number) == "" {
		return nil, shared.NewValidationError("Sale number is required")
	}
	if !h.OrderType.IsValid() {
		return nil, shared.NewValidationError("Order type must be one of dine_in, takeaway, delivery")
	}
	if h.OrderType == OrderTypeDineIn && (h.TableID == nil || *h.TableID == uuid.Nil) {
		return nil, shared.NewValidationError("Dine-in orders require a table")
	}
	if h.OrderType != OrderTypeDineIn && h.TableID != nil {
		return nil, shared.NewValidationError("Only dine-in orders can be assigned to a table")
	}
	if h.UserID == uuid.Nil {
		return nil, shared.NewValidationError("Sale user is required")
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            h.Number,
		OrderType:         h.OrderType,
		Status:            StatusOpen,
		TableID:           h.TableID,
		UserID:            h.UserID,
		CustomerName:      strings.TrimSpace(h.CustomerName),
		CustomerIDNumber:  strings.TrimSpace(h.CustomerIDNumber),
		Notes:             strings.TrimSpace(h.Notes),
		Items:             make([]SaleItem, 0),
	}
	s.recalculate()
	return s, nil
}

// AddItem prices and appends a line to an open sale
func (s *Sale) AddItem(in LineInput) (*SaleItem, error) {
	if s.Status != StatusOpen {
		return nil, shared.NewInvalidStateError("Items can only be added to an open sale")
	}
	item, err := NewSaleItem(s.ID, in)
	if err != nil {
		return nil, err
	}
	s.Items = append(s.Items, *item)
	s.recalculate()
	s.Touch()
	return item, nil
}

// recalculate sums the lines into the sale totals
func (s *Sale) recalculate() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	discount := decimal.Zero
	total := decimal.Zero
	cost := decimal.Zero
	for i := range s.Items {
		it := &s.Items[i]
		subtotal = subtotal.Add(it.Subtotal)
		tax = tax.Add(it.TaxAmount)
		discount = discount.Add(it.Discount)
		total = total.Add(it.Total)
		cost = cost.Add(it.CostTotal())
	}
	s.Subtotal = subtotal
	s.TaxAmount = tax
	s.DiscountAmount = discount
	s.Total = total
	s.CostTotal = cost
}

// MarkCreated records the creation event once lines are in place
func (s *Sale) MarkCreated() {
	s.Record(NewSaleCreatedEvent(s))
}

// Close settles an open sale inside the given cash-drawer period
func (s *Sale) Close(payment Payment, periodID uuid.UUID) error {
	if !s.Status.CanTransitionTo(StatusClosed) {
		return shared.NewInvalidStateError("Only open sales can be paid")
	}
	if len(s.Items) == 0 {
		return shared.NewValidationError("A sale needs at least one item")
	}
	if !payment.Method.IsValid() {
		return shared.NewValidationError("Payment method must be one of cash, transfer, card")
	}
	if periodID == uuid.Nil {
		return shared.ErrNoOpenPeriod
	}

	received := shared.RoundMoney(payment.AmountReceived)
	change := decimal.Zero
	if payment.Method == PaymentCash {
		if received.IsZero() {
			received = s.Total
		}
		if received.LessThan(s.Total) {
			return shared.NewValidationError("Amount received is less than the sale total")
		}
		change = received.Sub(s.Total)
	} else {
		received = s.Total
	}

	now := time.Now()
	s.Status = StatusClosed
	s.PaymentMethod = payment.Method
	s.AmountReceived = received
	s.ChangeAmount = change
	s.PeriodID = &periodID
	s.ClosedAt = &now
	s.Touch()

	s.Record(NewSaleClosedEvent(s))
	return nil
}

// Cancel abandons an open sale
func (s *Sale) Cancel(reason string, by uuid.UUID) error {
	if !s.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewInvalidStateError("Only open sales can be cancelled")
	}
	return s.reverse(StatusCancelled, reason, by)
}

// Void reverses a paid sale
func (s *Sale) Void(reason string, by uuid.UUID) error {
	if !s.Status.CanTransitionTo(StatusVoided) {
		return shared.NewInvalidStateError("Only closed sales can be voided")
	}
	return s.reverse(StatusVoided, reason, by)
}

func (s *Sale) reverse(target Status, reason string, by uuid.UUID) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewValidationError("A reason is required")
	}
	from := s.Status
	now := time.Now()
	s.Status = target
	s.CancelledAt = &now
	s.CancelledBy = &by
	s.CancelReason = reason
	s.Touch()

	s.Record(NewSaleReversedEvent(s, from))
	return nil
}

// ProductQuantities sums line quantities per product, the basis for stock movements
func (s *Sale) ProductQuantities() map[uuid.UUID]decimal.Decimal {
	return QuantitiesOf(s.Items)
}

// KitchenLines filters the lines that must be prepared in the kitchen
func KitchenLines(items []SaleItem) []SaleItem {
	out := make([]SaleItem, 0, len(items))
	for _, it := range items {
		if it.SendToKitchen {
			out = append(out, it)
		}
	}
	return out
}

// QuantitiesOf sums line quantities per product
func QuantitiesOf(items []SaleItem) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, it := range items {
		out[it.ProductID] = out[it.ProductID].Add(it.Quantity)
	}
	return out
}

// GrossProfit returns net revenue minus cost
func (s *Sale) GrossProfit() decimal.Decimal {
	return s.Subtotal.Sub(s.CostTotal)
}
