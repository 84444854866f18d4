// Package payroll holds restaurant staff records and their payroll entries.
package payroll

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Employee is a staff member on the payroll
type Employee struct {
	shared.BaseAggregateRoot
	FullName   string
	IDNumber   string
	Position   string
	Phone      string
	Email      string
	BaseSalary decimal.Decimal
	HireDate   time.Time
	Active     bool
}

// EmployeeInput carries the editable employee fields
type EmployeeInput struct {
	FullName   string
	IDNumber   string
	Position   string
	Phone      string
	Email      string
	BaseSalary decimal.Decimal
	HireDate   time.Time
}

// NewEmployee creates an active employee
func NewEmployee(in EmployeeInput) (*Employee, error) {
	e := &Employee{BaseAggregateRoot: shared.NewBaseAggregateRoot(), Active: true}
	if err := e.Update(in); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable fields
func (e *Employee) Update(in EmployeeInput) error {
	name := strings.TrimSpace(in.FullName)
	if name == "" || len(name) > 150 {
		return shared.NewValidationError("Employee name must have between 1 and 150 characters")
	}
	idNumber := strings.TrimSpace(in.IDNumber)
	if idNumber == "" || len(idNumber) > 20 {
		return shared.NewValidationError("Employee ID number must have between 1 and 20 characters")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewValidationError("Employee email is not valid")
		}
	}
	if in.BaseSalary.IsNegative() {
		return shared.NewValidationError("Base salary cannot be negative")
	}
	hire := in.HireDate
	if hire.IsZero() {
		hire = time.Now()
	}
	e.FullName = name
	e.IDNumber = idNumber
	e.Position = strings.TrimSpace(in.Position)
	e.Phone = strings.TrimSpace(in.Phone)
	e.Email = strings.ToLower(email)
	e.BaseSalary = shared.RoundMoney(in.BaseSalary)
	e.HireDate = hire
	e.Touch()
	return nil
}

// SetActive toggles the employee
func (e *Employee) SetActive(active bool) {
	e.Active = active
	e.Touch()
}

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context, filter EmployeeFilter) ([]*Employee, int64, error)
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID *uuid.UUID) (bool, error)
	// HasEntries reports whether payroll entries reference the employee
	HasEntries(ctx context.Context, id uuid.UUID) (bool, error)
}
