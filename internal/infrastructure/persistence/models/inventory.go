package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for a raw material.
type InventoryItemModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Unit     inventory.Unit  `gorm:"type:varchar(10);not null"`
	Stock    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	UnitCost decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	Active   bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain inventory Item.
func (m *InventoryItemModel) ToDomain() *inventory.Item {
	return &inventory.Item{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		Name:              m.Name,
		Unit:              m.Unit,
		Stock:             m.Stock,
		MinStock:          m.MinStock,
		UnitCost:          m.UnitCost,
		Active:            m.Active,
	}
}

// InventoryItemModelFromDomain creates a new persistence model from a domain inventory Item.
func InventoryItemModelFromDomain(i *inventory.Item) *InventoryItemModel {
	m := &InventoryItemModel{
		Name:     i.Name,
		Unit:     i.Unit,
		Stock:    i.Stock,
		MinStock: i.MinStock,
		UnitCost: i.UnitCost,
		Active:   i.Active,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// InventoryPurchaseModel is the persistence model for a stock purchase.
type InventoryPurchaseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName        string          `gorm:"type:varchar(100);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Supplier        string          `gorm:"type:varchar(200)"`
	Reference       string          `gorm:"type:varchar(100)"`
	PurchasedAt     time.Time       `gorm:"not null;index"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryPurchaseModel) TableName() string {
	return "inventory_purchases"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *InventoryPurchaseModel) ToDomain() *inventory.Purchase {
	return &inventory.Purchase{
		ID:              m.ID,
		InventoryItemID: m.InventoryItemID,
		ItemName:        m.ItemName,
		Quantity:        m.Quantity,
		UnitCost:        m.UnitCost,
		Total:           m.Total,
		Supplier:        m.Supplier,
		Reference:       m.Reference,
		PurchasedAt:     m.PurchasedAt,
		UserID:          m.UserID,
		CreatedAt:       m.CreatedAt,
	}
}

// InventoryPurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func InventoryPurchaseModelFromDomain(p *inventory.Purchase) *InventoryPurchaseModel {
	return &InventoryPurchaseModel{
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

// RecipeLineModel is one ingredient of a product recipe.
type RecipeLineModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipes_product_item,priority:1"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipes_product_item,priority:2;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}

// TableName returns the table name for GORM
func (RecipeLineModel) TableName() string {
	return "recipes"
}

// ToDomain converts the persistence model to a domain RecipeLine.
func (m *RecipeLineModel) ToDomain() inventory.RecipeLine {
	return inventory.RecipeLine{
		ID:              m.ID,
		ProductID:       m.ProductID,
		InventoryItemID: m.InventoryItemID,
		Quantity:        m.Quantity,
	}
}

// RecipeLineModelFromDomain creates a new persistence model from a domain RecipeLine.
func RecipeLineModelFromDomain(l inventory.RecipeLine) RecipeLineModel {
	return RecipeLineModel{
		ID:              l.ID,
		ProductID:       l.ProductID,
		InventoryItemID: l.InventoryItemID,
		Quantity:        l.Quantity,
	}
}
