package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/report"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RangeRequest contains the query parameters shared by the range reports
type RangeRequest struct {
	From    time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To      time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	TopN    int       `form:"top_n" binding:"omitempty,min=1,max=100"`
	OrderBy string    `form:"order_by" binding:"omitempty,oneof=quantity amount"`
}

// filter converts the request to a validated domain filter covering whole days
func (r RangeRequest) filter() (report.Filter, error) {
	f := report.Filter{TopN: r.TopN, OrderBy: r.OrderBy}
	if days := shared.DayRange(r.From, r.To); days != nil {
		f.From, f.To = days.From, days.To
	}
	if err := f.Validate(); err != nil {
		return report.Filter{}, err
	}
	return f.Normalize(), nil
}

// WithdrawalLine is one cash withdrawal in a period report
type WithdrawalLine struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	UserID    uuid.UUID       `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// PeriodReport reconciles one sales period: drawer figures, what was sold
// and the taxes collected. Open periods show live totals.
type PeriodReport struct {
	PeriodID      uuid.UUID               `json:"period_id"`
	Status        string                  `json:"status"`
	OpenedAt      time.Time               `json:"opened_at"`
	ClosedAt      *time.Time              `json:"closed_at,omitempty"`
	OpeningAmount decimal.Decimal         `json:"opening_amount"`
	CashSales     decimal.Decimal         `json:"cash_sales"`
	TransferSales decimal.Decimal         `json:"transfer_sales"`
	CardSales     decimal.Decimal         `json:"card_sales"`
	Withdrawals   decimal.Decimal         `json:"withdrawals"`
	ExpectedCash  decimal.Decimal         `json:"expected_cash"`
	CountedCash   decimal.Decimal         `json:"counted_cash"`
	Difference    decimal.Decimal         `json:"difference"`
	Summary       *report.SalesSummary    `json:"summary"`
	Taxes         []report.TaxLine        `json:"taxes"`
	Products      []report.ProductRanking `json:"products"`
	WithdrawalLog []WithdrawalLine        `json:"withdrawal_log"`
}

func newPeriodReport(p *cashier.SalesPeriod, withdrawals []*cashier.Withdrawal) *PeriodReport {
	out := &PeriodReport{
		PeriodID:      p.ID,
		Status:        string(p.Status),
		OpenedAt:      p.OpenedAt,
		ClosedAt:      p.ClosedAt,
		OpeningAmount: p.OpeningAmount,
		CashSales:     p.CashSales,
		TransferSales: p.TransferSales,
		CardSales:     p.CardSales,
		Withdrawals:   p.Withdrawals,
		ExpectedCash:  p.ExpectedCash,
		CountedCash:   p.CountedCash,
		Difference:    p.Difference,
		WithdrawalLog: make([]WithdrawalLine, len(withdrawals)),
	}
	for i, w := range withdrawals {
		out.WithdrawalLog[i] = WithdrawalLine{
			ID:        w.ID,
			Amount:    w.Amount,
			Reason:    w.Reason,
			UserID:    w.UserID,
			CreatedAt: w.CreatedAt,
		}
	}
	return out
}
