package cashier

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/shopspring/decimal"
)

// OpenPeriodRequest opens the cash drawer
type OpenPeriodRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" binding:"decimal_gte0"`
	Notes         string          `json:"notes" binding:"max=500"`
}

// WithdrawRequest takes cash out of the drawer
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Reason string          `json:"reason" binding:"required,min=1,max=255"`
}

// ClosePeriodRequest closes the drawer with the counted cash
type ClosePeriodRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash" binding:"decimal_gte0"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// PeriodListFilter contains query parameters for listing periods
type PeriodListFilter struct {
	Status   string    `form:"status" binding:"omitempty,oneof=open closed"`
	From     time.Time `form:"from" time_format:"2006-01-02"`
	To       time.Time `form:"to" time_format:"2006-01-02"`
	Page     int       `form:"page" binding:"omitempty,min=1"`
	PageSize int       `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// WithdrawalResponse represents a withdrawal in API responses
type WithdrawalResponse struct {
	ID        uuid.UUID       `json:"id"`
	PeriodID  uuid.UUID       `json:"period_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	UserID    uuid.UUID       `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// PeriodResponse represents a sales period in API responses
type PeriodResponse struct {
	ID            uuid.UUID       `json:"id"`
	Status        string          `json:"status"`
	OpenedBy      uuid.UUID       `json:"opened_by"`
	OpenedAt      time.Time       `json:"opened_at"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	ClosedBy      *uuid.UUID      `json:"closed_by,omitempty"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	CashSales     decimal.Decimal `json:"cash_sales"`
	TransferSales decimal.Decimal `json:"transfer_sales"`
	CardSales     decimal.Decimal `json:"card_sales"`
	Withdrawals   decimal.Decimal `json:"withdrawals"`
	ExpectedCash  decimal.Decimal `json:"expected_cash"`
	CountedCash   decimal.Decimal `json:"counted_cash"`
	Difference    decimal.Decimal `json:"difference"`
	Notes         string          `json:"notes"`
}

// PeriodDetailResponse is a period with its live totals and withdrawals
type PeriodDetailResponse struct {
	PeriodResponse
	TotalSales      decimal.Decimal      `json:"total_sales"`
	SalesCount      int64                `json:"sales_count"`
	WithdrawalItems []WithdrawalResponse `json:"withdrawal_items"`
}

// ToPeriodResponse converts a domain SalesPeriod to PeriodResponse
func ToPeriodResponse(p *cashier.SalesPeriod) PeriodResponse {
	return PeriodResponse{
		ID:            p.ID,
		Status:        string(p.Status),
		OpenedBy:      p.OpenedBy,
		OpenedAt:      p.OpenedAt,
		OpeningAmount: p.OpeningAmount,
		ClosedBy:      p.ClosedBy,
		ClosedAt:      p.ClosedAt,
		CashSales:     p.CashSales,
		TransferSales: p.TransferSales,
		CardSales:     p.CardSales,
		Withdrawals:   p.Withdrawals,
		ExpectedCash:  p.ExpectedCash,
		CountedCash:   p.CountedCash,
		Difference:    p.Difference,
		Notes:         p.Notes,
	}
}

// ToWithdrawalResponse converts a domain Withdrawal to WithdrawalResponse
func ToWithdrawalResponse(w *cashier.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:        w.ID,
		PeriodID:  w.PeriodID,
		Amount:    w.Amount,
		Reason:    w.Reason,
		UserID:    w.UserID,
		CreatedAt: w.CreatedAt,
	}
}
