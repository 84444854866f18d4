package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for an employee.
type EmployeeModel struct {
	BaseModel
	FullName   string          `gorm:"type:varchar(200);not null"`
	IDNumber   string          `gorm:"column:id_number;type:varchar(20);not null;uniqueIndex"`
	Position   string          `gorm:"type:varchar(100)"`
	Phone      string          `gorm:"type:varchar(30)"`
	Email      string          `gorm:"type:varchar(200)"`
	BaseSalary decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HireDate   time.Time       `gorm:"not null"`
	Active     bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee.
func (m *EmployeeModel) ToDomain() *payroll.Employee {
	return &payroll.Employee{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		FullName:          m.FullName,
		IDNumber:          m.IDNumber,
		Position:          m.Position,
		Phone:             m.Phone,
		Email:             m.Email,
		BaseSalary:        m.BaseSalary,
		HireDate:          m.HireDate,
		Active:            m.Active,
	}
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee.
func EmployeeModelFromDomain(e *payroll.Employee) *EmployeeModel {
	m := &EmployeeModel{
		FullName:   e.FullName,
		IDNumber:   e.IDNumber,
		Position:   e.Position,
		Phone:      e.Phone,
		Email:      e.Email,
		BaseSalary: e.BaseSalary,
		HireDate:   e.HireDate,
		Active:     e.Active,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// PayrollEntryModel is the persistence model for a payroll entry.
type PayrollEntryModel struct {
	BaseModel
	EmployeeID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	EmployeeName string              `gorm:"type:varchar(200);not null"`
	PeriodStart  time.Time           `gorm:"not null;index"`
	PeriodEnd    time.Time           `gorm:"not null"`
	BaseAmount   decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Bonuses      decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Deductions   decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	NetAmount    decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Status       payroll.EntryStatus `gorm:"type:varchar(10);not null;index"`
	PaidAt       *time.Time          `gorm:"index"`
	Notes        string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PayrollEntryModel) TableName() string {
	return "payroll_entries"
}

// ToDomain converts the persistence model to a domain payroll Entry.
func (m *PayrollEntryModel) ToDomain() *payroll.Entry {
	return &payroll.Entry{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		EmployeeID:        m.EmployeeID,
		EmployeeName:      m.EmployeeName,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		BaseAmount:        m.BaseAmount,
		Bonuses:           m.Bonuses,
		Deductions:        m.Deductions,
		NetAmount:         m.NetAmount,
		Status:            m.Status,
		PaidAt:            m.PaidAt,
		Notes:             m.Notes,
	}
}

// PayrollEntryModelFromDomain creates a new persistence model from a domain payroll Entry.
func PayrollEntryModelFromDomain(e *payroll.Entry) *PayrollEntryModel {
	m := &PayrollEntryModel{
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		PeriodStart:  e.PeriodStart,
		PeriodEnd:    e.PeriodEnd,
		BaseAmount:   e.BaseAmount,
		Bonuses:      e.Bonuses,
		Deductions:   e.Deductions,
		NetAmount:    e.NetAmount,
		Status:       e.Status,
		PaidAt:       e.PaidAt,
		Notes:        e.Notes,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
