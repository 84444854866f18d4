package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/restopos/backend/internal/application/sales"
)

// SaleService is the part of salesapp.SaleService the handler uses
type SaleService interface {
	Create(ctx context.Context, userID uuid.UUID, req salesapp.CreateSaleRequest) (*salesapp.SaleResponse, error)
	AddItems(ctx context.Context, saleID uuid.UUID, req salesapp.AddItemsRequest) (*salesapp.SaleResponse, error)
	Close(ctx context.Context, saleID uuid.UUID, req salesapp.CloseSaleRequest) (*salesapp.SaleResponse, error)
	Cancel(ctx context.Context, saleID, userID uuid.UUID, req salesapp.ReverseSaleRequest) (*salesapp.SaleResponse, error)
	Void(ctx context.Context, saleID, userID uuid.UUID, req salesapp.ReverseSaleRequest) (*salesapp.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*salesapp.SaleResponse, error)
	List(ctx context.Context, filter salesapp.SaleListFilter) ([]salesapp.SaleResponse, int64, error)
	Receipt(ctx context.Context, id uuid.UUID) (*salesapp.ReceiptResponse, error)
	CreateInvoice(ctx context.Context, saleID uuid.UUID, req salesapp.InvoiceRequest) (*salesapp.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*salesapp.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter salesapp.InvoiceListFilter) ([]salesapp.InvoiceResponse, int64, error)
}

// SaleHandler handles the order lifecycle and invoices
type SaleHandler struct {
	BaseHandler
	saleService SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create opens a sale, optionally paying and invoicing it at once
// POST /sales
func (h *SaleHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req salesapp.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// AddItems appends lines to an open sale
// POST /sales/:id/items
func (h *SaleHandler) AddItems(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req salesapp.AddItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.AddItems(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// Close pays an open sale
// POST /sales/:id/close
func (h *SaleHandler) Close(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req salesapp.CloseSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Close(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, "Sale closed", sale)
}

// Cancel cancels an open sale
// POST /sales/:id/cancel
func (h *SaleHandler) Cancel(c *gin.Context) {
	h.reverse(c, h.saleService.Cancel, "Sale cancelled")
}

// Void reverses a closed sale
// POST /sales/:id/void
func (h *SaleHandler) Void(c *gin.Context) {
	h.reverse(c, h.saleService.Void, "Sale voided")
}

func (h *SaleHandler) reverse(
	c *gin.Context,
	fn func(ctx context.Context, saleID, userID uuid.UUID, req salesapp.ReverseSaleRequest) (*salesapp.SaleResponse, error),
	message string,
) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req salesapp.ReverseSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := fn(c.Request.Context(), id, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMessage(c, message, sale)
}

// GetByID returns a sale with its lines
// GET /sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List lists sales with filtering and pagination
// GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sales, total, filter.Page, filter.PageSize)
}

// Receipt returns the printable receipt of a sale
// GET /sales/:id/receipt
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.saleService.Receipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// CreateInvoice issues the invoice of a closed sale
// POST /sales/:id/invoice
func (h *SaleHandler) CreateInvoice(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req salesapp.InvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.saleService.CreateInvoice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// ListInvoices lists invoices
// GET /invoices
func (h *SaleHandler) ListInvoices(c *gin.Context) {
	var filter salesapp.InvoiceListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	invoices, total, err := h.saleService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// GetInvoice returns an invoice
// GET /invoices/:id
func (h *SaleHandler) GetInvoice(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.saleService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}
