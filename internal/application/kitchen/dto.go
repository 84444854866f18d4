package kitchen

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
)

// OrderListFilter contains query parameters for the kitchen display.
// Without a status only active orders are returned.
type OrderListFilter struct {
	Status string     `form:"status" binding:"omitempty,oneof=pending preparing ready delivered cancelled"`
	SaleID *uuid.UUID `form:"sale_id"`
	Limit  int        `form:"limit" binding:"omitempty,min=1,max=500"`
}

// UpdateStatusRequest advances a kitchen order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=preparing ready delivered cancelled"`
}

// OrderResponse represents a kitchen order in API responses
type OrderResponse struct {
	ID          uuid.UUID      `json:"id"`
	SaleID      uuid.UUID      `json:"sale_id"`
	SaleNumber  string         `json:"sale_number"`
	TableName   string         `json:"table_name,omitempty"`
	OrderType   string         `json:"order_type"`
	Status      string         `json:"status"`
	Notes       string         `json:"notes,omitempty"`
	Items       []kitchen.Item `json:"items"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	ReadyAt     *time.Time     `json:"ready_at,omitempty"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *kitchen.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []kitchen.Item{}
	}
	return OrderResponse{
		ID:          o.ID,
		SaleID:      o.SaleID,
		SaleNumber:  o.SaleNumber,
		TableName:   o.TableName,
		OrderType:   o.OrderType,
		Status:      string(o.Status),
		Notes:       o.Notes,
		Items:       items,
		StartedAt:   o.StartedAt,
		ReadyAt:     o.ReadyAt,
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
