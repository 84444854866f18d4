package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/restopos/backend/internal/domain/payroll"
	"github.com/restopos/backend/internal/domain/report"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository with PostgreSQL aggregation queries
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// closedSales selects closed sales whose payment falls inside the range
func (r *GormReportRepository) closedSales(ctx context.Context, filter report.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Table("sales s").
		Where("s.status = ?", sales.StatusClosed).
		Where("s.closed_at BETWEEN ? AND ?", filter.From, filter.To)
	if filter.PeriodID != nil {
		query = query.Where("s.period_id = ?", *filter.PeriodID)
	}
	return query
}

// closedLines joins sale lines to their closed sale
func (r *GormReportRepository) closedLines(ctx context.Context, filter report.Filter) *gorm.DB {
	return r.closedSales(ctx, filter).Joins("JOIN sale_items si ON si.sale_id = s.id")
}

// SalesSummary returns totals, payment method split and reversal counts for the range
func (r *GormReportRepository) SalesSummary(ctx context.Context, filter report.Filter) (*report.SalesSummary, error) {
	var totals struct {
		SalesCount     int64
		Subtotal       decimal.Decimal
		TaxAmount      decimal.Decimal
		DiscountAmount decimal.Decimal
		Total          decimal.Decimal
		CostTotal      decimal.Decimal
	}
	if err := r.closedSales(ctx, filter).
		Select(`
			COUNT(*) as sales_count,
			COALESCE(SUM(s.subtotal), 0) as subtotal,
			COALESCE(SUM(s.tax_amount), 0) as tax_amount,
			COALESCE(SUM(s.discount_amount), 0) as discount_amount,
			COALESCE(SUM(s.total), 0) as total,
			COALESCE(SUM(s.cost_total), 0) as cost_total
		`).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	var methods []report.PaymentMethodTotal
	if err := r.closedSales(ctx, filter).
		Select(`
			s.payment_method as method,
			COUNT(*) as sales_count,
			COALESCE(SUM(s.total), 0) as total
		`).
		Group("s.payment_method").
		Order("total DESC").
		Scan(&methods).Error; err != nil {
		return nil, err
	}

	var reversals []struct {
		Status string
		Count  int64
	}
	reversed := r.db.WithContext(ctx).Table("sales s").
		Select("s.status as status, COUNT(*) as count").
		Where("s.status IN ?", []sales.Status{sales.StatusCancelled, sales.StatusVoided}).
		Where("s.cancelled_at BETWEEN ? AND ?", filter.From, filter.To)
	if filter.PeriodID != nil {
		// cancelled orders were never paid, so only the period window places them
		reversed = reversed.Where("(s.status = ? OR s.period_id = ?)", sales.StatusCancelled, *filter.PeriodID)
	}
	if err := reversed.Group("s.status").Scan(&reversals).Error; err != nil {
		return nil, err
	}

	summary := &report.SalesSummary{
		From:            filter.From,
		To:              filter.To,
		SalesCount:      totals.SalesCount,
		Subtotal:        shared.RoundMoney(totals.Subtotal),
		TaxAmount:       shared.RoundMoney(totals.TaxAmount),
		DiscountAmount:  shared.RoundMoney(totals.DiscountAmount),
		Total:           shared.RoundMoney(totals.Total),
		CostTotal:       shared.RoundMoney(totals.CostTotal),
		ByPaymentMethod: methods,
	}
	for _, rv := range reversals {
		switch sales.Status(rv.Status) {
		case sales.StatusCancelled:
			summary.CancelledCount = rv.Count
		case sales.StatusVoided:
			summary.VoidedCount = rv.Count
		}
	}
	summary.Finalize()
	return summary, nil
}

// DailySales returns one row per calendar day with closed sales
func (r *GormReportRepository) DailySales(ctx context.Context, filter report.Filter) ([]report.DailySales, error) {
	var rows []report.DailySales
	if err := r.closedSales(ctx, filter).
		Select(`
			TO_CHAR(s.closed_at, 'YYYY-MM-DD') as date,
			COUNT(*) as sales_count,
			COALESCE(SUM(s.subtotal), 0) as subtotal,
			COALESCE(SUM(s.tax_amount), 0) as tax_amount,
			COALESCE(SUM(s.total), 0) as total,
			COALESCE(SUM(s.cost_total), 0) as cost_total
		`).
		Group("TO_CHAR(s.closed_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].GrossProfit = shared.RoundMoney(rows[i].Subtotal.Sub(rows[i].CostTotal))
	}
	if rows == nil {
		rows = []report.DailySales{}
	}
	return rows, nil
}

// HourlySales returns all 24 hours of the day, zero-filled
func (r *GormReportRepository) HourlySales(ctx context.Context, filter report.Filter) ([]report.HourlySales, error) {
	var rows []report.HourlySales
	if err := r.closedSales(ctx, filter).
		Select(`
			CAST(EXTRACT(HOUR FROM s.closed_at) AS INTEGER) as hour,
			COUNT(*) as sales_count,
			COALESCE(SUM(s.total), 0) as total
		`).
		Group("CAST(EXTRACT(HOUR FROM s.closed_at) AS INTEGER)").
		Order("hour ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return report.FillHours(rows), nil
}

// ProductRanking returns the top-N products by quantity or amount
func (r *GormReportRepository) ProductRanking(ctx context.Context, filter report.Filter) ([]report.ProductRanking, error) {
	filter = filter.Normalize()
	order := "quantity DESC"
	if filter.OrderBy == report.OrderByAmount {
		order = "total DESC"
	}

	var rows []report.ProductRanking
	if err := r.closedLines(ctx, filter).
		Select(`
			si.product_id as product_id,
			si.product_name as product_name,
			COALESCE(c.name, '') as category_name,
			COALESCE(SUM(si.quantity), 0) as quantity,
			COALESCE(SUM(si.subtotal), 0) as subtotal,
			COALESCE(SUM(si.total), 0) as total,
			COALESCE(SUM(si.unit_cost * si.quantity), 0) as cost_total
		`).
		Joins("LEFT JOIN products p ON p.id = si.product_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Group("si.product_id, si.product_name, c.name").
		Order(order).
		Limit(filter.TopN).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.ProductRanking{}
	}
	return report.RankProducts(rows), nil
}

// CategorySales groups sold lines by the product's current category
func (r *GormReportRepository) CategorySales(ctx context.Context, filter report.Filter) ([]report.CategorySales, error) {
	var rows []struct {
		CategoryID   *uuid.UUID
		CategoryName string
		Quantity     decimal.Decimal
		Subtotal     decimal.Decimal
		Total        decimal.Decimal
		CostTotal    decimal.Decimal
	}
	if err := r.closedLines(ctx, filter).
		Select(`
			c.id as category_id,
			COALESCE(c.name, '') as category_name,
			COALESCE(SUM(si.quantity), 0) as quantity,
			COALESCE(SUM(si.subtotal), 0) as subtotal,
			COALESCE(SUM(si.total), 0) as total,
			COALESCE(SUM(si.unit_cost * si.quantity), 0) as cost_total
		`).
		Joins("LEFT JOIN products p ON p.id = si.product_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Group("c.id, c.name").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]report.CategorySales, len(rows))
	for i, row := range rows {
		out[i] = report.CategorySales{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Quantity:     row.Quantity,
			Subtotal:     row.Subtotal,
			Total:        row.Total,
			CostTotal:    shared.RoundMoney(row.CostTotal),
		}
	}
	return report.ShareCategories(out), nil
}

// TaxBreakdown groups sold lines by tax rate
func (r *GormReportRepository) TaxBreakdown(ctx context.Context, filter report.Filter) ([]report.TaxLine, error) {
	var rows []report.TaxLine
	if err := r.closedLines(ctx, filter).
		Select(`
			si.tax_rate as tax_rate,
			COUNT(si.id) as items_count,
			COALESCE(SUM(si.subtotal), 0) as subtotal,
			COALESCE(SUM(si.tax_amount), 0) as tax_amount,
			COALESCE(SUM(si.total), 0) as total
		`).
		Group("si.tax_rate").
		Order("si.tax_rate DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []report.TaxLine{}
	}
	return rows, nil
}

// ProfitAndLoss combines closed sales, paid payroll and investments for the range
func (r *GormReportRepository) ProfitAndLoss(ctx context.Context, filter report.Filter) (*report.ProfitAndLoss, error) {
	var salesRow struct {
		GrossSales   decimal.Decimal
		TaxCollected decimal.Decimal
		NetRevenue   decimal.Decimal
		CostOfGoods  decimal.Decimal
	}
	if err := r.closedSales(ctx, filter).
		Select(`
			COALESCE(SUM(s.total), 0) as gross_sales,
			COALESCE(SUM(s.tax_amount), 0) as tax_collected,
			COALESCE(SUM(s.subtotal), 0) as net_revenue,
			COALESCE(SUM(s.cost_total), 0) as cost_of_goods
		`).
		Scan(&salesRow).Error; err != nil {
		return nil, err
	}

	var payrollRow struct{ Amount decimal.Decimal }
	if err := r.db.WithContext(ctx).Table("payroll_entries").
		Select("COALESCE(SUM(net_amount), 0) as amount").
		Where("status = ? AND paid_at BETWEEN ? AND ?", payroll.EntryPaid, filter.From, filter.To).
		Scan(&payrollRow).Error; err != nil {
		return nil, err
	}

	var investmentRow struct{ Amount decimal.Decimal }
	if err := r.db.WithContext(ctx).Table("investments").
		Select("COALESCE(SUM(amount), 0) as amount").
		Where("invested_at BETWEEN ? AND ?", filter.From, filter.To).
		Scan(&investmentRow).Error; err != nil {
		return nil, err
	}

	pl := &report.ProfitAndLoss{
		From:         filter.From,
		To:           filter.To,
		GrossSales:   shared.RoundMoney(salesRow.GrossSales),
		TaxCollected: shared.RoundMoney(salesRow.TaxCollected),
		NetRevenue:   shared.RoundMoney(salesRow.NetRevenue),
		CostOfGoods:  shared.RoundMoney(salesRow.CostOfGoods),
		PayrollPaid:  shared.RoundMoney(payrollRow.Amount),
		Investments:  shared.RoundMoney(investmentRow.Amount),
	}
	pl.Finalize()
	return pl, nil
}

// InventoryValuation values every active inventory item at its average cost
func (r *GormReportRepository) InventoryValuation(ctx context.Context) (*report.InventoryValuation, error) {
	var rows []struct {
		ID       uuid.UUID
		Name     string
		Unit     inventory.Unit
		Stock    decimal.Decimal
		MinStock decimal.Decimal
		UnitCost decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("inventory_items").
		Select("id, name, unit, stock, min_stock, unit_cost").
		Where("active = ?", true).
		Order("name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]report.ValuationLine, len(rows))
	for i, row := range rows {
		lines[i] = report.ValuationLine{
			ItemID:   row.ID,
			Name:     row.Name,
			Unit:     string(row.Unit),
			Stock:    row.Stock,
			MinStock: row.MinStock,
			UnitCost: row.UnitCost,
		}
	}
	return report.NewInventoryValuation(lines), nil
}

var _ report.Repository = (*GormReportRepository)(nil)
