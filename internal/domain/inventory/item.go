// Package inventory tracks raw ingredients, their purchases and the recipes
// that consume them when products are sold.
package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Unit is the measure an ingredient is stocked in
type Unit string

const (
	UnitPiece      Unit = "unit"
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitOunce      Unit = "oz"
	UnitPound      Unit = "lb"
)

// IsValid checks if the unit is a known value
func (u Unit) IsValid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitOunce, UnitPound:
		return true
	}
	return false
}

// Item is a stocked ingredient or supply
type Item struct {
	shared.BaseAggregateRoot
	Name     string
	Unit     Unit
	Stock    decimal.Decimal
	MinStock decimal.Decimal
	UnitCost decimal.Decimal // moving weighted average
	Active   bool
}

// NewItem creates an active inventory item with zero stock
func NewItem(name string, unit Unit, minStock, unitCost decimal.Decimal) (*Item, error) {
	i := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Stock:             decimal.Zero,
		Active:            true,
	}
	if err := i.Update(name, unit, minStock, unitCost); err != nil {
		return nil, err
	}
	return i, nil
}

// Update changes the editable fields. Stock only moves through purchases,
// adjustments and sales.
func (i *Item) Update(name string, unit Unit, minStock, unitCost decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 150 {
		return shared.NewValidationError("Inventory item name must have between 1 and 150 characters")
	}
	if !unit.IsValid() {
		return shared.NewValidationError("Unit must be one of unit, kg, g, l, ml, oz, lb")
	}
	if minStock.IsNegative() {
		return shared.NewValidationError("Minimum stock cannot be negative")
	}
	if unitCost.IsNegative() {
		return shared.NewValidationError("Unit cost cannot be negative")
	}
	i.Name = name
	i.Unit = unit
	i.MinStock = shared.RoundQuantity(minStock)
	i.UnitCost = unitCost.Round(4)
	i.Touch()
	return nil
}

// SetActive toggles the item
func (i *Item) SetActive(active bool) {
	i.Active = active
	i.Touch()
}

// Receive adds purchased stock and recomputes the weighted average cost:
// (old qty x old cost + new qty x new cost) / (old qty + new qty)
func (i *Item) Receive(quantity, unitCost decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewValidationError("Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewValidationError("Unit cost cannot be negative")
	}
	if i.Stock.IsPositive() {
		value := i.Stock.Mul(i.UnitCost).Add(quantity.Mul(unitCost))
		i.UnitCost = value.Div(i.Stock.Add(quantity)).Round(4)
	} else {
		i.UnitCost = unitCost.Round(4)
	}
	i.Stock = shared.RoundQuantity(i.Stock.Add(quantity))
	i.Touch()
	return nil
}

// Consume removes stock used by a sale. Stock may go negative when the
// kitchen sells before purchases are recorded; the return value reports it.
func (i *Item) Consume(quantity decimal.Decimal) (belowZero bool) {
	i.Stock = shared.RoundQuantity(i.Stock.Sub(quantity))
	i.Touch()
	return i.Stock.IsNegative()
}

// Restore returns stock after a sale is cancelled or voided
func (i *Item) Restore(quantity decimal.Decimal) {
	i.Stock = shared.RoundQuantity(i.Stock.Add(quantity))
	i.Touch()
}

// Adjust applies a manual correction (waste, counting differences)
func (i *Item) Adjust(delta decimal.Decimal, reason string) error {
	if delta.IsZero() {
		return shared.NewValidationError("Adjustment cannot be zero")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewValidationError("Adjustment reason is required")
	}
	next := i.Stock.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError(shared.CodeInsufficientStock, "Adjustment would leave "+i.Name+" negative")
	}
	i.Stock = shared.RoundQuantity(next)
	i.Touch()
	return nil
}

// IsLow reports whether stock is at or below the minimum
func (i *Item) IsLow() bool {
	return i.Stock.LessThanOrEqual(i.MinStock)
}

// Value returns stock x unit cost, never negative
func (i *Item) Value() decimal.Decimal {
	if !i.Stock.IsPositive() {
		return decimal.Zero
	}
	return shared.RoundMoney(i.Stock.Mul(i.UnitCost))
}

// Purchase records ingredients bought from a supplier
type Purchase struct {
	ID              uuid.UUID
	InventoryItemID uuid.UUID
	ItemName        string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	Total           decimal.Decimal
	Supplier        string
	Reference       string
	PurchasedAt     time.Time
	UserID          uuid.UUID
	CreatedAt       time.Time
}

// NewPurchase validates and prices a purchase
func NewPurchase(itemID uuid.UUID, quantity, unitCost decimal.Decimal, supplier, reference string, purchasedAt time.Time, userID uuid.UUID) (*Purchase, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("Purchase item is required")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewValidationError("Purchase quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewValidationError("Purchase unit cost cannot be negative")
	}
	if purchasedAt.IsZero() {
		purchasedAt = time.Now()
	}
	return &Purchase{
		ID:              uuid.New(),
		InventoryItemID: itemID,
		Quantity:        shared.RoundQuantity(quantity),
		UnitCost:        unitCost.Round(4),
		Total:           shared.RoundMoney(quantity.Mul(unitCost)),
		Supplier:        strings.TrimSpace(supplier),
		Reference:       strings.TrimSpace(reference),
		PurchasedAt:     purchasedAt,
		UserID:          userID,
		CreatedAt:       time.Now(),
	}, nil
}

// ItemFilter narrows item listings
type ItemFilter struct {
	Search   string
	Active   *bool
	LowOnly  bool
	OrderBy  string
	OrderDir string
	Page     int
	PageSize int
}

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	InventoryItemID *uuid.UUID
	DateRange       *shared.DateRange
	Page            int
	PageSize        int
}

// ItemRepository persists inventory items
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Item, error)
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*Item, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]*Item, int64, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	// IsReferenced reports whether recipes or purchases point at the item
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// PurchaseRepository persists purchases
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	FindAll(ctx context.Context, filter PurchaseFilter) ([]*Purchase, int64, error)
}
