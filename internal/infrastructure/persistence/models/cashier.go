package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/shopspring/decimal"
)

// SalesPeriodModel is the persistence model for a cash-drawer period.
type SalesPeriodModel struct {
	BaseModel
	Status        cashier.PeriodStatus `gorm:"type:varchar(10);not null;index"`
	OpenedBy      uuid.UUID            `gorm:"type:uuid;not null"`
	OpenedAt      time.Time            `gorm:"not null;index"`
	OpeningAmount decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	ClosedBy      *uuid.UUID           `gorm:"type:uuid"`
	ClosedAt      *time.Time
	CashSales     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TransferSales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CardSales     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Withdrawals   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExpectedCash  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CountedCash   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Difference    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesPeriodModel) TableName() string {
	return "sales_periods"
}

// ToDomain converts the persistence model to a domain SalesPeriod.
func (m *SalesPeriodModel) ToDomain() *cashier.SalesPeriod {
	return &cashier.SalesPeriod{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		Status:            m.Status,
		OpenedBy:          m.OpenedBy,
		OpenedAt:          m.OpenedAt,
		OpeningAmount:     m.OpeningAmount,
		ClosedBy:          m.ClosedBy,
		ClosedAt:          m.ClosedAt,
		CashSales:         m.CashSales,
		TransferSales:     m.TransferSales,
		CardSales:         m.CardSales,
		Withdrawals:       m.Withdrawals,
		ExpectedCash:      m.ExpectedCash,
		CountedCash:       m.CountedCash,
		Difference:        m.Difference,
		Notes:             m.Notes,
	}
}

// SalesPeriodModelFromDomain creates a new persistence model from a domain SalesPeriod.
func SalesPeriodModelFromDomain(p *cashier.SalesPeriod) *SalesPeriodModel {
	m := &SalesPeriodModel{
		Status:        p.Status,
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
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// CashWithdrawalModel is the persistence model for cash taken out of the drawer.
type CashWithdrawalModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	PeriodID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reason    string          `gorm:"type:varchar(300);not null"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CashWithdrawalModel) TableName() string {
	return "cash_withdrawals"
}

// ToDomain converts the persistence model to a domain Withdrawal.
func (m *CashWithdrawalModel) ToDomain() *cashier.Withdrawal {
	return &cashier.Withdrawal{
		ID:        m.ID,
		PeriodID:  m.PeriodID,
		Amount:    m.Amount,
		Reason:    m.Reason,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

// CashWithdrawalModelFromDomain creates a new persistence model from a domain Withdrawal.
func CashWithdrawalModelFromDomain(w *cashier.Withdrawal) *CashWithdrawalModel {
	return &CashWithdrawalModel{
		ID:        w.ID,
		PeriodID:  w.PeriodID,
		Amount:    w.Amount,
		Reason:    w.Reason,
		UserID:    w.UserID,
		CreatedAt: w.CreatedAt,
	}
}
