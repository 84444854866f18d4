package floor

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/floor"
)

// CreateZoneRequest represents a request to create a zone
type CreateZoneRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
}

// UpdateZoneRequest represents a request to update a zone
type UpdateZoneRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
	Active    *bool  `json:"active"`
}

// ZoneResponse represents a zone in API responses
type ZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTableRequest represents a request to create a table
type CreateTableRequest struct {
	ZoneID   uuid.UUID `json:"zone_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=1,max=50"`
	Capacity int       `json:"capacity" binding:"required,min=1,max=100"`
}

// UpdateTableRequest represents a request to update a table
type UpdateTableRequest struct {
	ZoneID   uuid.UUID `json:"zone_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=1,max=50"`
	Capacity int       `json:"capacity" binding:"required,min=1,max=100"`
}

// SetTableStatusRequest sets a table free or reserved by hand
type SetTableStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=free reserved"`
}

// TableListFilter contains query parameters for listing tables
type TableListFilter struct {
	ZoneID *uuid.UUID `form:"zone_id"`
}

// TableResponse represents a table in API responses
type TableResponse struct {
	ID            uuid.UUID  `json:"id"`
	ZoneID        uuid.UUID  `json:"zone_id"`
	Name          string     `json:"name"`
	Capacity      int        `json:"capacity"`
	Status        string     `json:"status"`
	CurrentSaleID *uuid.UUID `json:"current_sale_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToZoneResponse converts a domain Zone to ZoneResponse
func ToZoneResponse(z *floor.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        z.ID,
		Name:      z.Name,
		SortOrder: z.SortOrder,
		Active:    z.Active,
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}

// ToTableResponse converts a domain Table to TableResponse
func ToTableResponse(t *floor.Table) TableResponse {
	return TableResponse{
		ID:            t.ID,
		ZoneID:        t.ZoneID,
		Name:          t.Name,
		Capacity:      t.Capacity,
		Status:        string(t.Status),
		CurrentSaleID: t.CurrentSaleID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
