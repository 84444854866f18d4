package kitchen

import (
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
)

// AggregateTypeKitchenOrder is the aggregate type for kitchen events
const AggregateTypeKitchenOrder = "KitchenOrder"

// Kitchen event types
const (
	EventTypeOrderCreated       = "kitchen.order.created"
	EventTypeOrderStatusChanged = "kitchen.order.status_changed"
)

// OrderCreatedEvent announces a new ticket to kitchen displays
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
	TableName  string    `json:"table_name,omitempty"`
	OrderType  string    `json:"order_type"`
	Notes      string    `json:"notes,omitempty"`
	Items      []Item    `json:"items"`
}

// NewOrderCreatedEvent creates an OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeKitchenOrder, o.ID),
		SaleID:          o.SaleID,
		SaleNumber:      o.SaleNumber,
		TableName:       o.TableName,
		OrderType:       o.OrderType,
		Notes:           o.Notes,
		Items:           o.Items,
	}
}

// OrderStatusChangedEvent announces a ticket moving between states
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID `json:"sale_id"`
	SaleNumber string    `json:"sale_number"`
	TableName  string    `json:"table_name,omitempty"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeKitchenOrder, o.ID),
		SaleID:          o.SaleID,
		SaleNumber:      o.SaleNumber,
		TableName:       o.TableName,
		From:            from,
		To:              o.Status,
	}
}
