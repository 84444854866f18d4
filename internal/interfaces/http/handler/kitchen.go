package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	kitchenapp "github.com/restopos/backend/internal/application/kitchen"
)

// KitchenService is the part of kitchenapp.KitchenService the handler uses
type KitchenService interface {
	List(ctx context.Context, filter kitchenapp.OrderListFilter) ([]kitchenapp.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*kitchenapp.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req kitchenapp.UpdateStatusRequest) (*kitchenapp.OrderResponse, error)
}

// KitchenHandler handles kitchen ticket endpoints
type KitchenHandler struct {
	BaseHandler
	kitchenService KitchenService
}

// NewKitchenHandler creates a new KitchenHandler
func NewKitchenHandler(kitchenService KitchenService) *KitchenHandler {
	return &KitchenHandler{kitchenService: kitchenService}
}

// List lists kitchen orders, oldest first. Without a status filter only
// pending and preparing tickets are returned.
// GET /kitchen/orders
func (h *KitchenHandler) List(c *gin.Context) {
	var filter kitchenapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	orders, err := h.kitchenService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetByID returns a kitchen order
// GET /kitchen/orders/:id
func (h *KitchenHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	order, err := h.kitchenService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus advances a kitchen order
// PUT /kitchen/orders/:id/status
func (h *KitchenHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req kitchenapp.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.kitchenService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
