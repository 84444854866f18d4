package models

import (
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryModel is the persistence model for the Category aggregate root.
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	SortOrder   int    `gorm:"not null;default:0"`
	Active      bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		SortOrder:         m.SortOrder,
		Active:            m.Active,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		Active:      c.Active,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ProductModel is the persistence model for the Product aggregate root.
// Products are soft-deleted so past sale lines keep their reference.
type ProductModel struct {
	BaseModel
	CategoryID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Code           string               `gorm:"type:varchar(50);not null;index"`
	Name           string               `gorm:"type:varchar(200);not null"`
	Description    string               `gorm:"type:text"`
	Price          decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	Cost           decimal.Decimal      `gorm:"type:decimal(12,4);not null;default:0"`
	TaxRate        decimal.Decimal      `gorm:"type:decimal(5,2);not null"`
	TrackStock     bool                 `gorm:"not null"`
	Stock          decimal.Decimal      `gorm:"type:decimal(12,3);not null;default:0"`
	SendToKitchen  bool                 `gorm:"not null"`
	ImageKey       string               `gorm:"type:varchar(255)"`
	Active         bool                 `gorm:"not null"`
	DeletedAt      gorm.DeletedAt       `gorm:"index"`
	ModifierGroups []ModifierGroupModel `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		CategoryID:        m.CategoryID,
		Code:              m.Code,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Cost:              m.Cost,
		TaxRate:           m.TaxRate,
		TrackStock:        m.TrackStock,
		Stock:             m.Stock,
		SendToKitchen:     m.SendToKitchen,
		ImageKey:          m.ImageKey,
		Active:            m.Active,
		ModifierGroups:    make([]catalog.ModifierGroup, len(m.ModifierGroups)),
	}
	for i := range m.ModifierGroups {
		p.ModifierGroups[i] = m.ModifierGroups[i].ToDomain()
	}
	return p
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
// Modifier groups are included so Create inserts them with the product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		CategoryID:     p.CategoryID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Cost:           p.Cost,
		TaxRate:        p.TaxRate,
		TrackStock:     p.TrackStock,
		Stock:          p.Stock,
		SendToKitchen:  p.SendToKitchen,
		ImageKey:       p.ImageKey,
		Active:         p.Active,
		ModifierGroups: ModifierGroupModelsFromDomain(p.ModifierGroups),
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ModifierGroupModel is the persistence model for a product's modifier group.
type ModifierGroupModel struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Name      string                `gorm:"type:varchar(100);not null"`
	MinSelect int                   `gorm:"not null;default:0"`
	MaxSelect int                   `gorm:"not null;default:0"`
	SortOrder int                   `gorm:"not null;default:0"`
	Options   []ModifierOptionModel `gorm:"foreignKey:GroupID;references:ID"`
}

// TableName returns the table name for GORM
func (ModifierGroupModel) TableName() string {
	return "modifier_groups"
}

// ToDomain converts the persistence model to a domain ModifierGroup.
func (m *ModifierGroupModel) ToDomain() catalog.ModifierGroup {
	g := catalog.ModifierGroup{
		ID:        m.ID,
		ProductID: m.ProductID,
		Name:      m.Name,
		MinSelect: m.MinSelect,
		MaxSelect: m.MaxSelect,
		SortOrder: m.SortOrder,
		Options:   make([]catalog.ModifierOption, len(m.Options)),
	}
	for i, o := range m.Options {
		g.Options[i] = catalog.ModifierOption{
			ID:         o.ID,
			GroupID:    o.GroupID,
			Name:       o.Name,
			PriceDelta: o.PriceDelta,
			Active:     o.Active,
		}
	}
	return g
}

// ModifierGroupModelsFromDomain maps groups with their options
func ModifierGroupModelsFromDomain(groups []catalog.ModifierGroup) []ModifierGroupModel {
	out := make([]ModifierGroupModel, len(groups))
	for i, g := range groups {
		out[i] = ModifierGroupModel{
			ID:        g.ID,
			ProductID: g.ProductID,
			Name:      g.Name,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
			SortOrder: g.SortOrder,
			Options:   make([]ModifierOptionModel, len(g.Options)),
		}
		for j, o := range g.Options {
			out[i].Options[j] = ModifierOptionModel{
				ID:         o.ID,
				GroupID:    g.ID,
				Name:       o.Name,
				PriceDelta: o.PriceDelta,
				Active:     o.Active,
				SortOrder:  j,
			}
		}
	}
	return out
}

// ModifierOptionModel is the persistence model for a modifier option.
type ModifierOptionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	GroupID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(100);not null"`
	PriceDelta decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active     bool            `gorm:"not null"`
	SortOrder  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ModifierOptionModel) TableName() string {
	return "modifier_options"
}
