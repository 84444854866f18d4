package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cashierapp "github.com/restopos/backend/internal/application/cashier"
)

// PeriodService is the part of cashierapp.PeriodService the handler uses
type PeriodService interface {
	Open(ctx context.Context, userID uuid.UUID, req cashierapp.OpenPeriodRequest) (*cashierapp.PeriodDetailResponse, error)
	Current(ctx context.Context) (*cashierapp.PeriodDetailResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*cashierapp.PeriodDetailResponse, error)
	List(ctx context.Context, filter cashierapp.PeriodListFilter) ([]cashierapp.PeriodResponse, int64, error)
	Withdraw(ctx context.Context, userID uuid.UUID, req cashierapp.WithdrawRequest) (*cashierapp.WithdrawalResponse, error)
	Close(ctx context.Context, userID uuid.UUID, req cashierapp.ClosePeriodRequest) (*cashierapp.PeriodDetailResponse, error)
}

// PeriodHandler handles the cash drawer: opening, withdrawals and closing
type PeriodHandler struct {
	BaseHandler
	periodService PeriodService
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periodService PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// Open opens a period. Only one may be open at a time.
// POST /periods/open
func (h *PeriodHandler) Open(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req cashierapp.OpenPeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	period, err := h.periodService.Open(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, period)
}

// Current returns the open period with its running totals
// GET /periods/current
func (h *PeriodHandler) Current(c *gin.Context) {
	period, err := h.periodService.Current(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, period)
}

// GetByID returns a period
// GET /periods/:id
func (h *PeriodHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	period, err := h.periodService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, period)
}

// List lists periods, newest first
// GET /periods
func (h *PeriodHandler) List(c *gin.Context) {
	var filter cashierapp.PeriodListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	periods, total, err := h.periodService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, periods, total, filter.Page, filter.PageSize)
}

// Withdraw takes cash out of the open period
// POST /periods/current/withdrawals
func (h *PeriodHandler) Withdraw(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req cashierapp.WithdrawRequest
	if !h.BindJSON(c, &req) {
		return
	}

	withdrawal, err := h.periodService.Withdraw(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, withdrawal)
}

// Close closes the open period with the counted cash
// POST /periods/current/close
func (h *PeriodHandler) Close(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req cashierapp.ClosePeriodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	period, err := h.periodService.Close(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Period closed", period)
}
