package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	payrollapp "github.com/restopos/backend/internal/application/payroll"
)

// PayrollService is the part of payrollapp.PayrollService the handler uses
type PayrollService interface {
	CreateEmployee(ctx context.Context, req payrollapp.CreateEmployeeRequest) (*payrollapp.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*payrollapp.EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter payrollapp.EmployeeListFilter) ([]payrollapp.EmployeeResponse, int64, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req payrollapp.UpdateEmployeeRequest) (*payrollapp.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	CreateEntry(ctx context.Context, req payrollapp.CreateEntryRequest) (*payrollapp.EntryResponse, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*payrollapp.EntryResponse, error)
	ListEntries(ctx context.Context, filter payrollapp.EntryListFilter) ([]payrollapp.EntryResponse, int64, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req payrollapp.UpdateEntryRequest) (*payrollapp.EntryResponse, error)
	PayEntry(ctx context.Context, id uuid.UUID, req payrollapp.PayEntryRequest) (*payrollapp.EntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// PayrollHandler handles employees and payroll entries
type PayrollHandler struct {
	BaseHandler
	payrollService PayrollService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(payrollService PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// CreateEmployee creates an employee
// POST /employees
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	var req payrollapp.CreateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// ListEmployees lists employees
// GET /employees
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	var filter payrollapp.EmployeeListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	employees, total, err := h.payrollService.ListEmployees(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, employees, total, filter.Page, filter.PageSize)
}

// GetEmployee returns an employee
// GET /employees/:id
func (h *PayrollHandler) GetEmployee(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	employee, err := h.payrollService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// UpdateEmployee updates an employee
// PUT /employees/:id
func (h *PayrollHandler) UpdateEmployee(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req payrollapp.UpdateEmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	employee, err := h.payrollService.UpdateEmployee(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// DeleteEmployee removes an employee without payroll history
// DELETE /employees/:id
func (h *PayrollHandler) DeleteEmployee(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.payrollService.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateEntry records a pending payroll entry
// POST /payroll
func (h *PayrollHandler) CreateEntry(c *gin.Context) {
	var req payrollapp.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.payrollService.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListEntries lists payroll entries
// GET /payroll
func (h *PayrollHandler) ListEntries(c *gin.Context) {
	var filter payrollapp.EntryListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	entries, total, err := h.payrollService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// GetEntry returns a payroll entry
// GET /payroll/:id
func (h *PayrollHandler) GetEntry(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	entry, err := h.payrollService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// UpdateEntry updates a pending payroll entry
// PUT /payroll/:id
func (h *PayrollHandler) UpdateEntry(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req payrollapp.UpdateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.payrollService.UpdateEntry(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// PayEntry marks a payroll entry as paid
// POST /payroll/:id/pay
func (h *PayrollHandler) PayEntry(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req payrollapp.PayEntryRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.payrollService.PayEntry(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// DeleteEntry removes a pending payroll entry
// DELETE /payroll/:id
func (h *PayrollHandler) DeleteEntry(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.payrollService.DeleteEntry(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
