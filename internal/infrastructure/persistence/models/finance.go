package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// InvestmentModel is the persistence model for a capital investment.
type InvestmentModel struct {
	BaseModel
	Description string                     `gorm:"type:varchar(300);not null"`
	Category    finance.InvestmentCategory `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal            `gorm:"type:decimal(12,2);not null"`
	InvestedAt  time.Time                  `gorm:"not null;index"`
	Notes       string                     `gorm:"type:text"`
	UserID      uuid.UUID                  `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (InvestmentModel) TableName() string {
	return "investments"
}

// ToDomain converts the persistence model to a domain Investment.
func (m *InvestmentModel) ToDomain() *finance.Investment {
	return &finance.Investment{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		Description:       m.Description,
		Category:          m.Category,
		Amount:            m.Amount,
		InvestedAt:        m.InvestedAt,
		Notes:             m.Notes,
		UserID:            m.UserID,
	}
}

// InvestmentModelFromDomain creates a new persistence model from a domain Investment.
func InvestmentModelFromDomain(i *finance.Investment) *InvestmentModel {
	m := &InvestmentModel{
		Description: i.Description,
		Category:    i.Category,
		Amount:      i.Amount,
		InvestedAt:  i.InvestedAt,
		Notes:       i.Notes,
		UserID:      i.UserID,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
