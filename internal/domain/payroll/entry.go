package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle of a payroll entry
type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntryPaid    EntryStatus = "paid"
)

// IsValid checks if the status is a known value
func (s EntryStatus) IsValid() bool {
	return s == EntryPending || s == EntryPaid
}

// Entry is one payment to an employee for a pay period
type Entry struct {
	shared.BaseAggregateRoot
	EmployeeID   uuid.UUID
	EmployeeName string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	BaseAmount   decimal.Decimal
	Bonuses      decimal.Decimal
	Deductions   decimal.Decimal
	NetAmount    decimal.Decimal
	Status       EntryStatus
	PaidAt       *time.Time
	Notes        string
}

// EntryInput carries the editable entry fields
type EntryInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	BaseAmount  decimal.Decimal
	Bonuses     decimal.Decimal
	Deductions  decimal.Decimal
	Notes       string
}

// NewEntry creates a pending entry. A zero base amount takes the employee's salary.
func NewEntry(employee *Employee, in EntryInput) (*Entry, error) {
	if employee == nil {
		return nil, shared.NewValidationError("Employee is required")
	}
	if !employee.Active {
		return nil, shared.NewInvalidStateError("Employee is not active")
	}
	if in.BaseAmount.IsZero() {
		in.BaseAmount = employee.BaseSalary
	}
	e := &Entry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employee.ID,
		EmployeeName:      employee.FullName,
		Status:            EntryPending,
	}
	if err := e.apply(in); err != nil {
		return nil, err
	}
	return e, nil
}

// Update changes a pending entry
func (e *Entry) Update(in EntryInput) error {
	if e.Status != EntryPending {
		return shared.NewInvalidStateError("Paid entries cannot be modified")
	}
	return e.apply(in)
}

func (e *Entry) apply(in EntryInput) error {
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() {
		return shared.NewValidationError("Pay period start and end are required")
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		return shared.NewValidationError("Pay period end must not precede its start")
	}
	if in.BaseAmount.IsNegative() || in.Bonuses.IsNegative() || in.Deductions.IsNegative() {
		return shared.NewValidationError("Amounts cannot be negative")
	}
	net := shared.RoundMoney(in.BaseAmount.Add(in.Bonuses).Sub(in.Deductions))
	if net.IsNegative() {
		return shared.NewValidationError("Deductions exceed base amount plus bonuses")
	}
	e.PeriodStart = in.PeriodStart
	e.PeriodEnd = in.PeriodEnd
	e.BaseAmount = shared.RoundMoney(in.BaseAmount)
	e.Bonuses = shared.RoundMoney(in.Bonuses)
	e.Deductions = shared.RoundMoney(in.Deductions)
	e.NetAmount = net
	e.Notes = strings.TrimSpace(in.Notes)
	e.Touch()
	return nil
}

// MarkPaid settles the entry
func (e *Entry) MarkPaid(at time.Time) error {
	if e.Status != EntryPending {
		return shared.NewInvalidStateError("Entry is already paid")
	}
	if at.IsZero() {
		at = time.Now()
	}
	e.Status = EntryPaid
	e.PaidAt = &at
	e.Touch()
	return nil
}

// CanDelete reports whether the entry may be removed
func (e *Entry) CanDelete() bool {
	return e.Status == EntryPending
}

// EntryFilter narrows entry listings
type EntryFilter struct {
	EmployeeID *uuid.UUID
	Status     *EntryStatus
	DateRange  *shared.DateRange
	Page       int
	PageSize   int
}

// EntryRepository persists payroll entries
type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindAll(ctx context.Context, filter EntryFilter) ([]*Entry, int64, error)
}
