// Package report defines the read models computed by SQL aggregation over
// closed sales, payroll, investments and inventory.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ranking orders
const (
	OrderByQuantity = "quantity"
	OrderByAmount   = "amount"
)

// Filter bounds a report to a date range, optionally to one sales period
type Filter struct {
	From     time.Time
	To       time.Time
	PeriodID *uuid.UUID
	TopN     int
	OrderBy  string
}

// Normalize applies defaults: TopN 10 (max 100) and ranking by quantity
func (f Filter) Normalize() Filter {
	if f.TopN <= 0 {
		f.TopN = 10
	}
	if f.TopN > 100 {
		f.TopN = 100
	}
	if f.OrderBy != OrderByAmount {
		f.OrderBy = OrderByQuantity
	}
	return f
}

// Validate rejects an empty or inverted range
func (f Filter) Validate() error {
	if f.From.IsZero() || f.To.IsZero() {
		return shared.NewValidationError("Report range requires from and to dates")
	}
	if f.To.Before(f.From) {
		return shared.NewValidationError("Report range end must not precede its start")
	}
	return nil
}

// PaymentMethodTotal is the paid amount for one payment method
type PaymentMethodTotal struct {
	Method     string          `json:"method"`
	SalesCount int64           `json:"sales_count"`
	Total      decimal.Decimal `json:"total"`
}

// SalesSummary aggregates closed sales in a range
type SalesSummary struct {
	From            time.Time            `json:"from"`
	To              time.Time            `json:"to"`
	SalesCount      int64                `json:"sales_count"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	TaxAmount       decimal.Decimal      `json:"tax_amount"`
	DiscountAmount  decimal.Decimal      `json:"discount_amount"`
	Total           decimal.Decimal      `json:"total"`
	CostTotal       decimal.Decimal      `json:"cost_total"`
	GrossProfit     decimal.Decimal      `json:"gross_profit"`
	MarginPercent   decimal.Decimal      `json:"margin_percent"`
	AverageTicket   decimal.Decimal      `json:"average_ticket"`
	ByPaymentMethod []PaymentMethodTotal `json:"by_payment_method"`
	CancelledCount  int64                `json:"cancelled_count"`
	VoidedCount     int64                `json:"voided_count"`
}

// Finalize derives profit, margin and average ticket from the sums
func (s *SalesSummary) Finalize() {
	s.GrossProfit = shared.RoundMoney(s.Subtotal.Sub(s.CostTotal))
	s.MarginPercent = shared.Percent(s.GrossProfit, s.Subtotal)
	if s.SalesCount > 0 {
		s.AverageTicket = shared.RoundMoney(s.Total.Div(decimal.NewFromInt(s.SalesCount)))
	} else {
		s.AverageTicket = decimal.Zero
	}
	if s.ByPaymentMethod == nil {
		s.ByPaymentMethod = []PaymentMethodTotal{}
	}
}

// DailySales is one day of the sales trend
type DailySales struct {
	Date        string          `json:"date"`
	SalesCount  int64           `json:"sales_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
	CostTotal   decimal.Decimal `json:"cost_total"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
}

// HourlySales is the distribution of sales by hour of day (0-23)
type HourlySales struct {
	Hour       int             `json:"hour"`
	SalesCount int64           `json:"sales_count"`
	Total      decimal.Decimal `json:"total"`
}

// FillHours returns all 24 hours, zero-filled where there were no sales
func FillHours(rows []HourlySales) []HourlySales {
	out := make([]HourlySales, 24)
	for h := range out {
		out[h] = HourlySales{Hour: h, Total: decimal.Zero}
	}
	for _, r := range rows {
		if r.Hour >= 0 && r.Hour < 24 {
			out[r.Hour] = r
		}
	}
	return out
}

// ProductRanking is one product in the top-N ranking
type ProductRanking struct {
	Rank          int             `json:"rank"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	CostTotal     decimal.Decimal `json:"cost_total"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// CategorySales groups closed sale lines by product category
type CategorySales struct {
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	CostTotal    decimal.Decimal `json:"cost_total"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	SharePercent decimal.Decimal `json:"share_percent"`
}

// TaxLine groups closed sale lines by tax rate
type TaxLine struct {
	TaxRate    decimal.Decimal `json:"tax_rate"`
	ItemsCount int64           `json:"items_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total"`
}

// RankProducts numbers the rows and fills profit and margin
func RankProducts(rows []ProductRanking) []ProductRanking {
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].GrossProfit = shared.RoundMoney(rows[i].Subtotal.Sub(rows[i].CostTotal))
		rows[i].MarginPercent = shared.Percent(rows[i].GrossProfit, rows[i].Subtotal)
	}
	return rows
}

// ShareCategories fills profit and each category's share of the total
func ShareCategories(rows []CategorySales) []CategorySales {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Total)
	}
	for i := range rows {
		rows[i].GrossProfit = shared.RoundMoney(rows[i].Subtotal.Sub(rows[i].CostTotal))
		rows[i].SharePercent = shared.Percent(rows[i].Total, total)
		if rows[i].CategoryName == "" {
			rows[i].CategoryName = "Sin categoría"
		}
	}
	return rows
}

// Repository runs the aggregation queries. Only closed sales count as revenue.
type Repository interface {
	SalesSummary(ctx context.Context, filter Filter) (*SalesSummary, error)
	DailySales(ctx context.Context, filter Filter) ([]DailySales, error)
	HourlySales(ctx context.Context, filter Filter) ([]HourlySales, error)
	ProductRanking(ctx context.Context, filter Filter) ([]ProductRanking, error)
	CategorySales(ctx context.Context, filter Filter) ([]CategorySales, error)
	TaxBreakdown(ctx context.Context, filter Filter) ([]TaxLine, error)
	ProfitAndLoss(ctx context.Context, filter Filter) (*ProfitAndLoss, error)
	InventoryValuation(ctx context.Context) (*InventoryValuation, error)
}
