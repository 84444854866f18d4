package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
)

// SaleFilter narrows sale listings
type SaleFilter struct {
	Status    *Status
	OrderType *OrderType
	PeriodID  *uuid.UUID
	TableID   *uuid.UUID
	UserID    *uuid.UUID
	Search    string
	DateRange *shared.DateRange
	Page      int
	PageSize  int
}

// SaleRepository persists sales and their lines
type SaleRepository interface {
	// Create inserts the sale header and all its lines
	Create(ctx context.Context, sale *Sale) error
	// Update writes the header fields (status, totals, payment)
	Update(ctx context.Context, sale *Sale) error
	// AddItems inserts additional lines for an existing sale
	AddItems(ctx context.Context, saleID uuid.UUID, items []SaleItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	// FindByIDForUpdate loads the sale with its lines and locks the header row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]*Sale, int64, error)
	// NextNumber generates the next human-readable sale number
	NextNumber(ctx context.Context) (string, error)
}
