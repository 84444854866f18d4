package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/restopos/backend/internal/application/finance"
	"github.com/shopspring/decimal"
)

// InvestmentService is the part of financeapp.InvestmentService the handler uses
type InvestmentService interface {
	Create(ctx context.Context, userID uuid.UUID, req financeapp.InvestmentRequest) (*financeapp.InvestmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financeapp.InvestmentResponse, error)
	List(ctx context.Context, filter financeapp.InvestmentListFilter) (*financeapp.InvestmentListResult, error)
	Update(ctx context.Context, id uuid.UUID, req financeapp.InvestmentRequest) (*financeapp.InvestmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvestmentList is one page of investments with the total over the whole filter
type InvestmentList struct {
	Items       []financeapp.InvestmentResponse `json:"items"`
	TotalAmount decimal.Decimal                 `json:"total_amount"`
}

// InvestmentHandler handles capital investments
type InvestmentHandler struct {
	BaseHandler
	investmentService InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// Create records an investment
// POST /investments
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req financeapp.InvestmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	investment, err := h.investmentService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, investment)
}

// List lists investments with the filtered total
// GET /investments
func (h *InvestmentHandler) List(c *gin.Context) {
	var filter financeapp.InvestmentListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	result, err := h.investmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := result.Items
	if items == nil {
		items = []financeapp.InvestmentResponse{}
	}
	h.SuccessWithMeta(c, InvestmentList{Items: items, TotalAmount: result.TotalAmount},
		result.Total, filter.Page, filter.PageSize)
}

// GetByID returns an investment
// GET /investments/:id
func (h *InvestmentHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	investment, err := h.investmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investment)
}

// Update updates an investment
// PUT /investments/:id
func (h *InvestmentHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req financeapp.InvestmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	investment, err := h.investmentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, investment)
}

// Delete removes an investment
// DELETE /investments/:id
func (h *InvestmentHandler) Delete(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.investmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
