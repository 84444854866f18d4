package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	SortOrder   int    `json:"sort_order"`
	Active      *bool  `json:"active"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateProductRequest represents a request to create a product. Price is the PVP.
type CreateProductRequest struct {
	CategoryID    uuid.UUID        `json:"category_id" binding:"required"`
	Code          string           `json:"code" binding:"required,min=1,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=2000"`
	Price         decimal.Decimal  `json:"price" binding:"decimal_gte0"`
	Cost          decimal.Decimal  `json:"cost" binding:"decimal_gte0"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	TrackStock    bool             `json:"track_stock"`
	SendToKitchen bool             `json:"send_to_kitchen"`
}

// UpdateProductRequest replaces the editable product fields
type UpdateProductRequest struct {
	CategoryID    uuid.UUID        `json:"category_id" binding:"required"`
	Code          string           `json:"code" binding:"required,min=1,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=2000"`
	Price         decimal.Decimal  `json:"price" binding:"decimal_gte0"`
	Cost          decimal.Decimal  `json:"cost" binding:"decimal_gte0"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	TrackStock    bool             `json:"track_stock"`
	SendToKitchen bool             `json:"send_to_kitchen"`
	Active        *bool            `json:"active"`
}

// ModifierOptionInput is one option of a modifier group
type ModifierOptionInput struct {
	Name       string          `json:"name" binding:"required,min=1,max=100"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Active     *bool           `json:"active"`
}

// ModifierGroupInput is one modifier group with its options
type ModifierGroupInput struct {
	Name      string                `json:"name" binding:"required,min=1,max=100"`
	MinSelect int                   `json:"min_select" binding:"min=0"`
	MaxSelect int                   `json:"max_select" binding:"min=0"`
	Options   []ModifierOptionInput `json:"options" binding:"required,min=1,dive"`
}

// SetModifiersRequest replaces every modifier group of a product
type SetModifiersRequest struct {
	Groups []ModifierGroupInput `json:"groups" binding:"dive"`
}

// AdjustStockRequest applies a manual stock correction to a tracked product
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" binding:"required,min=1,max=255"`
}

// ImageUploadRequest asks for a presigned upload URL
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
}

// AttachImageRequest stores the key of an uploaded image on the product
type AttachImageRequest struct {
	Key string `json:"key" binding:"required,max=255"`
}

// ProductListFilter contains query parameters for listing products
type ProductListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
	Search     string     `form:"search"`
	Active     *bool      `form:"active"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// ModifierOptionResponse is an option in API responses
type ModifierOptionResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Active     bool            `json:"active"`
}

// ModifierGroupResponse is a modifier group in API responses
type ModifierGroupResponse struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	MinSelect int                      `json:"min_select"`
	MaxSelect int                      `json:"max_select"`
	Options   []ModifierOptionResponse `json:"options"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID               `json:"id"`
	CategoryID     uuid.UUID               `json:"category_id"`
	Code           string                  `json:"code"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	Price          decimal.Decimal         `json:"price"`
	NetPrice       decimal.Decimal         `json:"net_price"`
	Cost           decimal.Decimal         `json:"cost"`
	Margin         decimal.Decimal         `json:"margin"`
	TaxRate        decimal.Decimal         `json:"tax_rate"`
	TrackStock     bool                    `json:"track_stock"`
	Stock          decimal.Decimal         `json:"stock"`
	SendToKitchen  bool                    `json:"send_to_kitchen"`
	ImageKey       string                  `json:"image_key,omitempty"`
	Active         bool                    `json:"active"`
	ModifierGroups []ModifierGroupResponse `json:"modifier_groups"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ImageURLResponse carries a presigned URL
type ImageURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	groups := make([]ModifierGroupResponse, len(p.ModifierGroups))
	for i, g := range p.ModifierGroups {
		opts := make([]ModifierOptionResponse, len(g.Options))
		for j, o := range g.Options {
			opts[j] = ModifierOptionResponse{ID: o.ID, Name: o.Name, PriceDelta: o.PriceDelta, Active: o.Active}
		}
		groups[i] = ModifierGroupResponse{
			ID:        g.ID,
			Name:      g.Name,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
			Options:   opts,
		}
	}
	return ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		NetPrice:       p.NetPrice(),
		Cost:           p.Cost,
		Margin:         p.Margin(),
		TaxRate:        p.TaxRate,
		TrackStock:     p.TrackStock,
		Stock:          p.Stock,
		SendToKitchen:  p.SendToKitchen,
		ImageKey:       p.ImageKey,
		Active:         p.Active,
		ModifierGroups: groups,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

func toModifierGroups(in []ModifierGroupInput) []catalog.ModifierGroup {
	groups := make([]catalog.ModifierGroup, len(in))
	for i, g := range in {
		opts := make([]catalog.ModifierOption, len(g.Options))
		for j, o := range g.Options {
			active := true
			if o.Active != nil {
				active = *o.Active
			}
			opts[j] = catalog.ModifierOption{Name: o.Name, PriceDelta: o.PriceDelta, Active: active}
		}
		groups[i] = catalog.ModifierGroup{
			Name:      g.Name,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
			SortOrder: i,
			Options:   opts,
		}
	}
	return groups
}
