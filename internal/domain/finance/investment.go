// Package finance records capital spent on the restaurant outside the
// cost of goods sold.
package finance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvestmentCategory classifies an investment
type InvestmentCategory string

const (
	CategoryEquipment  InvestmentCategory = "equipment"
	CategoryFurniture  InvestmentCategory = "furniture"
	CategoryRenovation InvestmentCategory = "renovation"
	CategorySupplies   InvestmentCategory = "supplies"
	CategoryOther      InvestmentCategory = "other"
)

// IsValid checks if the category is a known value
func (c InvestmentCategory) IsValid() bool {
	switch c {
	case CategoryEquipment, CategoryFurniture, CategoryRenovation, CategorySupplies, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of InvestmentCategory
func (c InvestmentCategory) String() string {
	return string(c)
}

// Investment is money put into equipment, furniture or the premises
type Investment struct {
	shared.BaseAggregateRoot
	Description string
	Category    InvestmentCategory
	Amount      decimal.Decimal
	InvestedAt  time.Time
	Notes       string
	UserID      uuid.UUID
}

// InvestmentInput carries the editable investment fields
type InvestmentInput struct {
	Description string
	Category    InvestmentCategory
	Amount      decimal.Decimal
	InvestedAt  time.Time
	Notes       string
}

// NewInvestment creates an investment recorded by the given user
func NewInvestment(in InvestmentInput, userID uuid.UUID) (*Investment, error) {
	i := &Investment{BaseAggregateRoot: shared.NewBaseAggregateRoot(), UserID: userID}
	if err := i.Update(in); err != nil {
		return nil, err
	}
	return i, nil
}

// Update replaces the editable fields
func (i *Investment) Update(in InvestmentInput) error {
	desc := strings.TrimSpace(in.Description)
	if desc == "" || len(desc) > 255 {
		return shared.NewValidationError("Description must have between 1 and 255 characters")
	}
	if in.Category == "" {
		in.Category = CategoryOther
	}
	if !in.Category.IsValid() {
		return shared.NewValidationError("Category must be one of equipment, furniture, renovation, supplies, other")
	}
	if !in.Amount.IsPositive() {
		return shared.NewValidationError("Amount must be positive")
	}
	at := in.InvestedAt
	if at.IsZero() {
		at = time.Now()
	}
	i.Description = desc
	i.Category = in.Category
	i.Amount = shared.RoundMoney(in.Amount)
	i.InvestedAt = at
	i.Notes = strings.TrimSpace(in.Notes)
	i.Touch()
	return nil
}

// InvestmentFilter narrows investment listings
type InvestmentFilter struct {
	Category  *InvestmentCategory
	DateRange *shared.DateRange
	Page      int
	PageSize  int
}

// InvestmentRepository persists investments
type InvestmentRepository interface {
	Create(ctx context.Context, i *Investment) error
	Update(ctx context.Context, i *Investment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Investment, error)
	FindAll(ctx context.Context, filter InvestmentFilter) ([]*Investment, int64, error)
	// SumAmount totals the investments matching the filter, ignoring paging
	SumAmount(ctx context.Context, filter InvestmentFilter) (decimal.Decimal, error)
}
