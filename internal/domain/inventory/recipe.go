package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecipeLine says how much of an inventory item one unit of a product consumes
type RecipeLine struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	InventoryItemID uuid.UUID
	Quantity        decimal.Decimal
}

// Recipe is the full bill of materials of a product
type Recipe struct {
	ProductID uuid.UUID
	Lines     []RecipeLine
}

// NewRecipe validates the lines: positive quantities, one line per item
func NewRecipe(productID uuid.UUID, lines []RecipeLine) (*Recipe, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Recipe product is required")
	}
	seen := make(map[uuid.UUID]bool, len(lines))
	out := make([]RecipeLine, 0, len(lines))
	for _, l := range lines {
		if l.InventoryItemID == uuid.Nil {
			return nil, shared.NewValidationError("Recipe line item is required")
		}
		if !l.Quantity.IsPositive() {
			return nil, shared.NewValidationError("Recipe quantity must be positive")
		}
		if seen[l.InventoryItemID] {
			return nil, shared.NewValidationError("Inventory item appears twice in the recipe")
		}
		seen[l.InventoryItemID] = true
		out = append(out, RecipeLine{
			ID:              uuid.New(),
			ProductID:       productID,
			InventoryItemID: l.InventoryItemID,
			Quantity:        shared.RoundQuantity(l.Quantity),
		})
	}
	return &Recipe{ProductID: productID, Lines: out}, nil
}

// ItemIDs returns the inventory items the recipe consumes
func (r *Recipe) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Lines))
	for i, l := range r.Lines {
		ids[i] = l.InventoryItemID
	}
	return ids
}

// Cost prices one unit of product with the given item costs
func (r *Recipe) Cost(costs map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.Quantity.Mul(costs[l.InventoryItemID]))
	}
	return total.Round(4)
}

// Consumption expands product quantities sold into inventory item quantities
func Consumption(lines []RecipeLine, soldQty map[uuid.UUID]decimal.Decimal) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, l := range lines {
		qty, ok := soldQty[l.ProductID]
		if !ok {
			continue
		}
		out[l.InventoryItemID] = out[l.InventoryItemID].Add(l.Quantity.Mul(qty))
	}
	return out
}

// RecipeRepository persists recipe lines
type RecipeRepository interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*Recipe, error)
	// FindLinesByProductIDs returns every line for the given products
	FindLinesByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]RecipeLine, error)
	// Replace deletes the product's lines and inserts the recipe's
	Replace(ctx context.Context, recipe *Recipe) error
}
