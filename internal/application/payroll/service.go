// Package payroll manages employees and the payments made to them.
package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/payroll"
	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PayrollService handles employee and payroll entry operations
type PayrollService struct {
	employeeRepo payroll.EmployeeRepository
	entryRepo    payroll.EntryRepository
	logger       *zap.Logger
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(employeeRepo payroll.EmployeeRepository, entryRepo payroll.EntryRepository, logger *zap.Logger) *PayrollService {
	return &PayrollService{employeeRepo: employeeRepo, entryRepo: entryRepo, logger: logger}
}

// CreateEmployee adds an employee with a unique ID number
func (s *PayrollService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if err := s.ensureUniqueIDNumber(ctx, req.IDNumber, nil); err != nil {
		return nil, err
	}
	employee, err := payroll.NewEmployee(req.input())
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetEmployee returns an employee by ID
func (s *PayrollService) GetEmployee(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// ListEmployees lists employees by name
func (s *PayrollService) ListEmployees(ctx context.Context, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	employees, total, err := s.employeeRepo.FindAll(ctx, payroll.EmployeeFilter{
		Search:   filter.Search,
		Active:   filter.Active,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		out[i] = ToEmployeeResponse(e)
	}
	return out, total, nil
}

// UpdateEmployee replaces an employee's fields
func (s *PayrollService) UpdateEmployee(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueIDNumber(ctx, req.IDNumber, &id); err != nil {
		return nil, err
	}
	if err := employee.Update(req.input()); err != nil {
		return nil, err
	}
	if req.Active != nil {
		employee.SetActive(*req.Active)
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// DeleteEmployee removes an employee without payroll history
func (s *PayrollService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	used, err := s.employeeRepo.HasEntries(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewConflictError("Employee has payroll entries; deactivate instead")
	}
	return s.employeeRepo.Delete(ctx, id)
}

// CreateEntry records a pending payroll entry for an active employee
func (s *PayrollService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*EntryResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	entry, err := payroll.NewEntry(employee, payroll.EntryInput{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		BaseAmount:  req.BaseAmount,
		Bonuses:     req.Bonuses,
		Deductions:  req.Deductions,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	response := ToEntryResponse(entry)
	return &response, nil
}

// GetEntry returns a payroll entry by ID
func (s *PayrollService) GetEntry(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToEntryResponse(entry)
	return &response, nil
}

// ListEntries lists entries, latest pay period first
func (s *PayrollService) ListEntries(ctx context.Context, filter EntryListFilter) ([]EntryResponse, int64, error) {
	f := payroll.EntryFilter{
		EmployeeID: filter.EmployeeID,
		DateRange:  shared.DayRange(filter.From, filter.To),
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	if filter.Status != "" {
		status := payroll.EntryStatus(filter.Status)
		f.Status = &status
	}
	entries, total, err := s.entryRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out, total, nil
}

// UpdateEntry changes a pending entry
func (s *PayrollService) UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entry.Update(payroll.EntryInput{
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		BaseAmount:  req.BaseAmount,
		Bonuses:     req.Bonuses,
		Deductions:  req.Deductions,
		Notes:       req.Notes,
	}); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	response := ToEntryResponse(entry)
	return &response, nil
}

// PayEntry marks a pending entry as paid
func (s *PayrollService) PayEntry(ctx context.Context, id uuid.UUID, req PayEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	if err := entry.MarkPaid(paidAt); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info("Payroll entry paid",
		zap.String("entry_id", entry.ID.String()),
		zap.String("employee_id", entry.EmployeeID.String()),
		zap.String("net_amount", entry.NetAmount.StringFixed(2)))
	response := ToEntryResponse(entry)
	return &response, nil
}

// DeleteEntry removes a pending entry
func (s *PayrollService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !entry.CanDelete() {
		return shared.NewInvalidStateError("Paid entries cannot be deleted")
	}
	return s.entryRepo.Delete(ctx, id)
}

func (s *PayrollService) ensureUniqueIDNumber(ctx context.Context, idNumber string, excludeID *uuid.UUID) error {
	exists, err := s.employeeRepo.ExistsByIDNumber(ctx, idNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "An employee with ID number "+idNumber+" already exists")
	}
	return nil
}
