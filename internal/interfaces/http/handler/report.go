package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/restopos/backend/internal/application/report"
	"github.com/restopos/backend/internal/domain/report"
)

// ReportService is the part of reportapp.ReportService the handler uses
type ReportService interface {
	Summary(ctx context.Context, req reportapp.RangeRequest) (*report.SalesSummary, error)
	Daily(ctx context.Context, req reportapp.RangeRequest) ([]report.DailySales, error)
	Hourly(ctx context.Context, req reportapp.RangeRequest) ([]report.HourlySales, error)
	Products(ctx context.Context, req reportapp.RangeRequest) ([]report.ProductRanking, error)
	Categories(ctx context.Context, req reportapp.RangeRequest) ([]report.CategorySales, error)
	Taxes(ctx context.Context, req reportapp.RangeRequest) ([]report.TaxLine, error)
	ProfitAndLoss(ctx context.Context, req reportapp.RangeRequest) (*report.ProfitAndLoss, error)
	Inventory(ctx context.Context) (*report.InventoryValuation, error)
	Period(ctx context.Context, id uuid.UUID) (*reportapp.PeriodReport, error)
}

// ReportHandler serves the back-office reports. Range reports take
// from and to dates (YYYY-MM-DD), both inclusive.
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func rangeReport[T any](h *ReportHandler, c *gin.Context, fn func(context.Context, reportapp.RangeRequest) (T, error)) {
	var req reportapp.RangeRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := fn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Summary returns totals for closed sales in the range
// GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	rangeReport(h, c, h.reportService.Summary)
}

// Daily returns one row per day with sales
// GET /reports/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	rangeReport(h, c, h.reportService.Daily)
}

// Hourly returns sales grouped by hour of day
// GET /reports/hourly
func (h *ReportHandler) Hourly(c *gin.Context) {
	rangeReport(h, c, h.reportService.Hourly)
}

// Products ranks products by quantity or amount
// GET /reports/products
func (h *ReportHandler) Products(c *gin.Context) {
	rangeReport(h, c, h.reportService.Products)
}

// Categories returns sales per category
// GET /reports/categories
func (h *ReportHandler) Categories(c *gin.Context) {
	rangeReport(h, c, h.reportService.Categories)
}

// Taxes returns the taxable base and tax per rate
// GET /reports/taxes
func (h *ReportHandler) Taxes(c *gin.Context) {
	rangeReport(h, c, h.reportService.Taxes)
}

// ProfitAndLoss returns revenue, cost of goods, payroll and investments
// GET /reports/profit-loss
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	rangeReport(h, c, h.reportService.ProfitAndLoss)
}

// Inventory values current stock at cost
// GET /reports/inventory
func (h *ReportHandler) Inventory(c *gin.Context) {
	valuation, err := h.reportService.Inventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, valuation)
}

// Period reconciles one sales period
// GET /reports/periods/:id
func (h *ReportHandler) Period(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	result, err := h.reportService.Period(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
