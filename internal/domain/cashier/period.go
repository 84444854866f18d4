// Package cashier models the cash drawer: sales periods (shifts) and the
// withdrawals made from them.
package cashier

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PeriodStatus is the lifecycle of a sales period
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "open"
	PeriodClosed PeriodStatus = "closed"
)

// Totals are the live figures of a period, computed from paid sales and
// withdrawals
type Totals struct {
	CashSales     decimal.Decimal `json:"cash_sales"`
	TransferSales decimal.Decimal `json:"transfer_sales"`
	CardSales     decimal.Decimal `json:"card_sales"`
	Withdrawals   decimal.Decimal `json:"withdrawals"`
	SalesCount    int64           `json:"sales_count"`
}

// TotalSales sums every payment method
func (t Totals) TotalSales() decimal.Decimal {
	return t.CashSales.Add(t.TransferSales).Add(t.CardSales)
}

// SalesPeriod is a cash-drawer shift between open and close
type SalesPeriod struct {
	shared.BaseAggregateRoot
	Status        PeriodStatus
	OpenedBy      uuid.UUID
	OpenedAt      time.Time
	OpeningAmount decimal.Decimal
	ClosedBy      *uuid.UUID
	ClosedAt      *time.Time
	CashSales     decimal.Decimal
	TransferSales decimal.Decimal
	CardSales     decimal.Decimal
	Withdrawals   decimal.Decimal
	ExpectedCash  decimal.Decimal
	CountedCash   decimal.Decimal
	Difference    decimal.Decimal
	Notes         string
}

// OpenPeriod starts a shift with the float placed in the drawer
func OpenPeriod(openedBy uuid.UUID, openingAmount decimal.Decimal, notes string) (*SalesPeriod, error) {
	if openedBy == uuid.Nil {
		return nil, shared.NewValidationError("Opening user is required")
	}
	if openingAmount.IsNegative() {
		return nil, shared.NewValidationError("Opening amount cannot be negative")
	}
	p := &SalesPeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            PeriodOpen,
		OpenedBy:          openedBy,
		OpenedAt:          time.Now(),
		OpeningAmount:     shared.RoundMoney(openingAmount),
		CashSales:         decimal.Zero,
		TransferSales:     decimal.Zero,
		CardSales:         decimal.Zero,
		Withdrawals:       decimal.Zero,
		ExpectedCash:      shared.RoundMoney(openingAmount),
		CountedCash:       decimal.Zero,
		Difference:        decimal.Zero,
		Notes:             strings.TrimSpace(notes),
	}
	p.Record(NewPeriodOpenedEvent(p))
	return p, nil
}

// IsOpen reports whether the period still accepts sales
func (p *SalesPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}

// ExpectedCashFor returns opening + cash sales - withdrawals
func (p *SalesPeriod) ExpectedCashFor(t Totals) decimal.Decimal {
	return shared.RoundMoney(p.OpeningAmount.Add(t.CashSales).Sub(t.Withdrawals))
}

// Apply copies live totals onto an open period for display
func (p *SalesPeriod) Apply(t Totals) {
	if !p.IsOpen() {
		return
	}
	p.CashSales = shared.RoundMoney(t.CashSales)
	p.TransferSales = shared.RoundMoney(t.TransferSales)
	p.CardSales = shared.RoundMoney(t.CardSales)
	p.Withdrawals = shared.RoundMoney(t.Withdrawals)
	p.ExpectedCash = p.ExpectedCashFor(t)
}

// Close reconciles the drawer: difference = counted - expected. A positive
// difference is a surplus, negative a shortage.
func (p *SalesPeriod) Close(closedBy uuid.UUID, counted decimal.Decimal, t Totals, notes string) error {
	if !p.IsOpen() {
		return shared.NewInvalidStateError("Period is already closed")
	}
	if closedBy == uuid.Nil {
		return shared.NewValidationError("Closing user is required")
	}
	if counted.IsNegative() {
		return shared.NewValidationError("Counted cash cannot be negative")
	}
	p.Apply(t)
	now := time.Now()
	p.Status = PeriodClosed
	p.ClosedBy = &closedBy
	p.ClosedAt = &now
	p.CountedCash = shared.RoundMoney(counted)
	p.Difference = p.CountedCash.Sub(p.ExpectedCash)
	if n := strings.TrimSpace(notes); n != "" {
		if p.Notes != "" {
			p.Notes += "\n"
		}
		p.Notes += n
	}
	p.Touch()
	p.Record(NewPeriodClosedEvent(p))
	return nil
}

// Withdrawal is cash taken out of the drawer during a period
type Withdrawal struct {
	ID        uuid.UUID
	PeriodID  uuid.UUID
	Amount    decimal.Decimal
	Reason    string
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Withdraw validates a withdrawal against the cash currently in the drawer
func (p *SalesPeriod) Withdraw(amount decimal.Decimal, reason string, userID uuid.UUID, t Totals) (*Withdrawal, error) {
	if !p.IsOpen() {
		return nil, shared.NewInvalidStateError("Withdrawals require an open period")
	}
	amount = shared.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Withdrawal amount must be positive")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("Withdrawal reason is required")
	}
	available := p.ExpectedCashFor(t)
	if amount.GreaterThan(available) {
		return nil, shared.NewDomainError(shared.CodeValidation,
			"Withdrawal exceeds the cash available in the drawer ("+available.StringFixed(2)+")")
	}
	w := &Withdrawal{
		ID:        uuid.New(),
		PeriodID:  p.ID,
		Amount:    amount,
		Reason:    reason,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	t.Withdrawals = t.Withdrawals.Add(amount)
	p.Apply(t)
	p.Touch()
	return w, nil
}

// PeriodFilter narrows period listings
type PeriodFilter struct {
	Status    *PeriodStatus
	DateRange *shared.DateRange
	Page      int
	PageSize  int
}

// PeriodRepository persists sales periods
type PeriodRepository interface {
	Create(ctx context.Context, period *SalesPeriod) error
	Update(ctx context.Context, period *SalesPeriod) error
	FindByID(ctx context.Context, id uuid.UUID) (*SalesPeriod, error)
	// FindOpen returns the open period or ErrNoOpenPeriod
	FindOpen(ctx context.Context) (*SalesPeriod, error)
	FindOpenForUpdate(ctx context.Context) (*SalesPeriod, error)
	FindAll(ctx context.Context, filter PeriodFilter) ([]*SalesPeriod, int64, error)
	// Totals sums paid sales by method and withdrawals for the period
	Totals(ctx context.Context, periodID uuid.UUID) (Totals, error)
}

// WithdrawalRepository persists withdrawals
type WithdrawalRepository interface {
	Create(ctx context.Context, w *Withdrawal) error
	FindByPeriodID(ctx context.Context, periodID uuid.UUID) ([]*Withdrawal, error)
}
