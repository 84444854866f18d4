package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/restopos/backend/internal/application/inventory"
)

// InventoryService is the part of inventoryapp.InventoryService the handler uses
type InventoryService interface {
	CreateItem(ctx context.Context, req inventoryapp.CreateItemRequest) (*inventoryapp.ItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*inventoryapp.ItemResponse, error)
	ListItems(ctx context.Context, filter inventoryapp.ItemListFilter) ([]inventoryapp.ItemResponse, int64, error)
	LowStock(ctx context.Context) ([]inventoryapp.ItemResponse, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req inventoryapp.UpdateItemRequest) (*inventoryapp.ItemResponse, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	AdjustItem(ctx context.Context, id, userID uuid.UUID, req inventoryapp.AdjustItemRequest) (*inventoryapp.ItemResponse, error)
	CreatePurchase(ctx context.Context, userID uuid.UUID, req inventoryapp.CreatePurchaseRequest) (*inventoryapp.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter inventoryapp.PurchaseListFilter) ([]inventoryapp.PurchaseResponse, int64, error)
}

// InventoryHandler handles raw-material items and purchases
type InventoryHandler struct {
	BaseHandler
	inventoryService InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateItem creates an inventory item
// POST /inventory/items
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// ListItems lists inventory items
// GET /inventory/items
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var filter inventoryapp.ItemListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	items, total, err := h.inventoryService.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetItem returns an inventory item
// GET /inventory/items/:id
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// UpdateItem updates an inventory item
// PUT /inventory/items/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req inventoryapp.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteItem removes an item no recipe uses
// DELETE /inventory/items/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustItem applies a manual stock correction
// POST /inventory/items/:id/adjust
func (h *InventoryHandler) AdjustItem(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req inventoryapp.AdjustItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.AdjustItem(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// LowStock lists active items at or below their minimum
// GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreatePurchase records a purchase and raises the item's stock
// POST /inventory/purchases
func (h *InventoryHandler) CreatePurchase(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req inventoryapp.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	purchase, err := h.inventoryService.CreatePurchase(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// ListPurchases lists purchases
// GET /inventory/purchases
func (h *InventoryHandler) ListPurchases(c *gin.Context) {
	var filter inventoryapp.PurchaseListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	purchases, total, err := h.inventoryService.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}
