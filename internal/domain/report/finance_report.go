package report

import (
	"time"

	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProfitAndLoss is the income statement of the restaurant for a range
type ProfitAndLoss struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	GrossSales   decimal.Decimal `json:"gross_sales"`
	TaxCollected decimal.Decimal `json:"tax_collected"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`
	CostOfGoods  decimal.Decimal `json:"cost_of_goods"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	GrossMargin  decimal.Decimal `json:"gross_margin"`
	PayrollPaid  decimal.Decimal `json:"payroll_paid"`
	Investments  decimal.Decimal `json:"investments"`
	NetResult    decimal.Decimal `json:"net_result"`
	NetMargin    decimal.Decimal `json:"net_margin"`
}

// Finalize derives profit lines: net result = gross profit - payroll - investments
func (p *ProfitAndLoss) Finalize() {
	p.GrossProfit = shared.RoundMoney(p.NetRevenue.Sub(p.CostOfGoods))
	p.GrossMargin = shared.Percent(p.GrossProfit, p.NetRevenue)
	p.NetResult = shared.RoundMoney(p.GrossProfit.Sub(p.PayrollPaid).Sub(p.Investments))
	p.NetMargin = shared.Percent(p.NetResult, p.NetRevenue)
}
