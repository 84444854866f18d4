package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=150"`
	Unit     string          `json:"unit" binding:"required,oneof=unit kg g l ml oz lb"`
	MinStock decimal.Decimal `json:"min_stock" binding:"decimal_gte0"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"decimal_gte0"`
}

// UpdateItemRequest represents a request to update an inventory item
type UpdateItemRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=150"`
	Unit     string          `json:"unit" binding:"required,oneof=unit kg g l ml oz lb"`
	MinStock decimal.Decimal `json:"min_stock" binding:"decimal_gte0"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"decimal_gte0"`
	Active   *bool           `json:"active"`
}

// AdjustItemRequest applies a manual stock correction
type AdjustItemRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" binding:"required,min=1,max=255"`
}

// ItemListFilter contains query parameters for listing items
type ItemListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Value     decimal.Decimal `json:"value"`
	Low       bool            `json:"low"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreatePurchaseRequest records a purchase of an inventory item
type CreatePurchaseRequest struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	UnitCost        decimal.Decimal `json:"unit_cost" binding:"decimal_gte0"`
	Supplier        string          `json:"supplier" binding:"max=150"`
	Reference       string          `json:"reference" binding:"max=100"`
	PurchasedAt     *time.Time      `json:"purchased_at"`
}

// PurchaseListFilter contains query parameters for listing purchases
type PurchaseListFilter struct {
	InventoryItemID *uuid.UUID `form:"inventory_item_id"`
	From            time.Time  `form:"from" time_format:"2006-01-02"`
	To              time.Time  `form:"to" time_format:"2006-01-02"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID              uuid.UUID       `json:"id"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	ItemName        string          `json:"item_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Total           decimal.Decimal `json:"total"`
	Supplier        string          `json:"supplier"`
	Reference       string          `json:"reference"`
	PurchasedAt     time.Time       `json:"purchased_at"`
	UserID          uuid.UUID       `json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RecipeLineInput is one ingredient of a recipe
type RecipeLineInput struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
}

// SetRecipeRequest replaces a product's recipe. ApplyCost copies the
// computed cost onto the product.
type SetRecipeRequest struct {
	Lines     []RecipeLineInput `json:"lines" binding:"dive"`
	ApplyCost bool              `json:"apply_cost"`
}

// RecipeLineResponse is a recipe line priced with the item's current cost
type RecipeLineResponse struct {
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	ItemName        string          `json:"item_name"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Cost            decimal.Decimal `json:"cost"`
}

// RecipeResponse is a product's recipe with its unit cost
type RecipeResponse struct {
	ProductID   uuid.UUID            `json:"product_id"`
	ProductName string               `json:"product_name"`
	Lines       []RecipeLineResponse `json:"lines"`
	Cost        decimal.Decimal      `json:"cost"`
	ProductCost decimal.Decimal      `json:"product_cost"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Unit:      string(i.Unit),
		Stock:     i.Stock,
		MinStock:  i.MinStock,
		UnitCost:  i.UnitCost,
		Value:     i.Value(),
		Low:       i.IsLow(),
		Active:    i.Active,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []*inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = ToItemResponse(item)
	}
	return out
}

// ToPurchaseResponse converts a domain Purchase to PurchaseResponse
func ToPurchaseResponse(p *inventory.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		InventoryItemID: p.InventoryItemID,
		ItemName:        p.ItemName,
		Quantity:        p.Quantity,
		UnitCost:        p.UnitCost,
		Total:           p.Total,
		Supplier:        p.Supplier,
		Reference:       p.Reference,
		PurchasedAt:     p.PurchasedAt,
		UserID:          p.UserID,
		CreatedAt:       p.CreatedAt,
	}
}
