package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest represents a request to add an employee
type CreateEmployeeRequest struct {
	FullName   string          `json:"full_name" binding:"required,min=1,max=150"`
	IDNumber   string          `json:"id_number" binding:"required,min=1,max=20"`
	Position   string          `json:"position" binding:"max=100"`
	Phone      string          `json:"phone" binding:"max=30"`
	Email      string          `json:"email" binding:"omitempty,email,max=150"`
	BaseSalary decimal.Decimal `json:"base_salary" binding:"decimal_gte0"`
	HireDate   time.Time       `json:"hire_date"`
}

// UpdateEmployeeRequest represents a request to update an employee
type UpdateEmployeeRequest struct {
	CreateEmployeeRequest
	Active *bool `json:"active"`
}

// EmployeeListFilter contains query parameters for listing employees
type EmployeeListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID       `json:"id"`
	FullName   string          `json:"full_name"`
	IDNumber   string          `json:"id_number"`
	Position   string          `json:"position,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Email      string          `json:"email,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	HireDate   time.Time       `json:"hire_date"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateEntryRequest represents a request to record a payroll entry.
// A zero base amount takes the employee's salary.
type CreateEntryRequest struct {
	EmployeeID  uuid.UUID       `json:"employee_id" binding:"required"`
	PeriodStart time.Time       `json:"period_start" binding:"required"`
	PeriodEnd   time.Time       `json:"period_end" binding:"required"`
	BaseAmount  decimal.Decimal `json:"base_amount" binding:"decimal_gte0"`
	Bonuses     decimal.Decimal `json:"bonuses" binding:"decimal_gte0"`
	Deductions  decimal.Decimal `json:"deductions" binding:"decimal_gte0"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// UpdateEntryRequest represents a request to change a pending entry
type UpdateEntryRequest struct {
	PeriodStart time.Time       `json:"period_start" binding:"required"`
	PeriodEnd   time.Time       `json:"period_end" binding:"required"`
	BaseAmount  decimal.Decimal `json:"base_amount" binding:"decimal_gte0"`
	Bonuses     decimal.Decimal `json:"bonuses" binding:"decimal_gte0"`
	Deductions  decimal.Decimal `json:"deductions" binding:"decimal_gte0"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// PayEntryRequest marks an entry as paid; PaidAt defaults to now
type PayEntryRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// EntryListFilter contains query parameters for listing payroll entries
type EntryListFilter struct {
	EmployeeID *uuid.UUID `form:"employee_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending paid"`
	From       time.Time  `form:"from" time_format:"2006-01-02"`
	To         time.Time  `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// EntryResponse represents a payroll entry in API responses
type EntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	BaseAmount   decimal.Decimal `json:"base_amount"`
	Bonuses      decimal.Decimal `json:"bonuses"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	Status       string          `json:"status"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *payroll.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		IDNumber:   e.IDNumber,
		Position:   e.Position,
		Phone:      e.Phone,
		Email:      e.Email,
		BaseSalary: e.BaseSalary,
		HireDate:   e.HireDate,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEntryResponse converts a domain Entry to EntryResponse
func ToEntryResponse(e *payroll.Entry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		PeriodStart:  e.PeriodStart,
		PeriodEnd:    e.PeriodEnd,
		BaseAmount:   e.BaseAmount,
		Bonuses:      e.Bonuses,
		Deductions:   e.Deductions,
		NetAmount:    e.NetAmount,
		Status:       string(e.Status),
		PaidAt:       e.PaidAt,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (r CreateEmployeeRequest) input() payroll.EmployeeInput {
	return payroll.EmployeeInput{
		FullName:   r.FullName,
		IDNumber:   r.IDNumber,
		Position:   r.Position,
		Phone:      r.Phone,
		Email:      r.Email,
		BaseSalary: r.BaseSalary,
		HireDate:   r.HireDate,
	}
}
