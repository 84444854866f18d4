// Package kitchen models the tickets the kitchen prepares, derived from sale lines.
package kitchen

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the preparation state of a kitchen order
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusPreparing || target == StatusCancelled
	case StatusPreparing:
		return target == StatusReady || target == StatusCancelled
	case StatusReady:
		return target == StatusDelivered || target == StatusCancelled
	}
	return false
}

// IsActive reports whether the order still shows on the kitchen display
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusPreparing || s == StatusReady
}

// ActiveStatuses lists the statuses shown on kitchen displays
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady}
}

// Item is one line to prepare
type Item struct {
	ID             uuid.UUID       `json:"id"`
	KitchenOrderID uuid.UUID       `json:"kitchen_order_id"`
	SaleItemID     uuid.UUID       `json:"sale_item_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Modifiers      []string        `json:"modifiers"`
	Notes          string          `json:"notes,omitempty"`
}

// ItemInput describes a sale line sent to the kitchen
type ItemInput struct {
	SaleItemID  uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	Modifiers   []string
	Notes       string
}

// Order is a kitchen ticket. A sale produces one ticket per batch of lines
// sent to the kitchen (initial order and each later addition).
type Order struct {
	shared.BaseAggregateRoot
	SaleID      uuid.UUID
	SaleNumber  string
	TableName   string
	OrderType   string
	Status      Status
	Notes       string
	Items       []Item
	StartedAt   *time.Time
	ReadyAt     *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// NewOrder creates a pending kitchen ticket
func NewOrder(saleID uuid.UUID, saleNumber, tableName, orderType, notes string, items []ItemInput) (*Order, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewValidationError("Kitchen order requires a sale")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Kitchen order requires at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleID:            saleID,
		SaleNumber:        saleNumber,
		TableName:         tableName,
		OrderType:         orderType,
		Status:            StatusPending,
		Notes:             strings.TrimSpace(notes),
		Items:             make([]Item, 0, len(items)),
	}
	for _, in := range items {
		if !in.Quantity.IsPositive() {
			return nil, shared.NewValidationError("Kitchen item quantity must be positive")
		}
		mods := in.Modifiers
		if mods == nil {
			mods = []string{}
		}
		o.Items = append(o.Items, Item{
			ID:             uuid.New(),
			KitchenOrderID: o.ID,
			SaleItemID:     in.SaleItemID,
			ProductName:    in.ProductName,
			Quantity:       in.Quantity,
			Modifiers:      mods,
			Notes:          strings.TrimSpace(in.Notes),
		})
	}
	o.Record(NewOrderCreatedEvent(o))
	return o, nil
}

// TransitionTo advances the ticket and stamps the matching timestamp
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("Unknown kitchen order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError("Kitchen order cannot move from " + string(o.Status) + " to " + string(target))
	}
	from := o.Status
	now := time.Now()
	switch target {
	case StatusPreparing:
		o.StartedAt = &now
	case StatusReady:
		o.ReadyAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}
	o.Status = target
	o.Touch()
	o.Record(NewOrderStatusChangedEvent(o, from))
	return nil
}

// Cancel cancels the ticket if it is still active. Returns false when nothing changed.
func (o *Order) Cancel() bool {
	if !o.Status.IsActive() {
		return false
	}
	return o.TransitionTo(StatusCancelled) == nil
}

// Filter narrows kitchen order listings
type Filter struct {
	Statuses []Status
	SaleID   *uuid.UUID
	Limit    int
}

// Repository persists kitchen orders with their items
type Repository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAll returns matching orders oldest first
	FindAll(ctx context.Context, filter Filter) ([]*Order, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]*Order, error)
}
