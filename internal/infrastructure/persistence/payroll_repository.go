package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/payroll"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(ctx context.Context, e *payroll.Employee) error {
	return r.db.WithContext(ctx).Create(models.EmployeeModelFromDomain(e)).Error
}

// Update updates an existing employee
func (r *GormEmployeeRepository) Update(ctx context.Context, e *payroll.Employee) error {
	return r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(e)).Error
}

// Delete deletes an employee by ID
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns employees matching the filter with pagination
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter payroll.EmployeeFilter) ([]*payroll.Employee, int64, error) {
	var rows []*models.EmployeeModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.EmployeeModel{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(full_name) LIKE ? OR id_number LIKE ?", pattern, pattern)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query.Order("full_name ASC"), filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	employees := make([]*payroll.Employee, len(rows))
	for i, m := range rows {
		employees[i] = m.ToDomain()
	}
	return employees, total, nil
}

// ExistsByIDNumber checks whether another employee has the identification number
func (r *GormEmployeeRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("id_number = ?", strings.TrimSpace(idNumber))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasEntries reports whether payroll entries reference the employee
func (r *GormEmployeeRepository) HasEntries(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PayrollEntryModel{}).
		Where("employee_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormPayrollEntryRepository implements EntryRepository using GORM
type GormPayrollEntryRepository struct {
	db *gorm.DB
}

// NewGormPayrollEntryRepository creates a new GormPayrollEntryRepository
func NewGormPayrollEntryRepository(db *gorm.DB) *GormPayrollEntryRepository {
	return &GormPayrollEntryRepository{db: db}
}

// Create creates a new payroll entry
func (r *GormPayrollEntryRepository) Create(ctx context.Context, e *payroll.Entry) error {
	return r.db.WithContext(ctx).Create(models.PayrollEntryModelFromDomain(e)).Error
}

// Update updates an existing payroll entry
func (r *GormPayrollEntryRepository) Update(ctx context.Context, e *payroll.Entry) error {
	return r.db.WithContext(ctx).Save(models.PayrollEntryModelFromDomain(e)).Error
}

// Delete deletes a payroll entry by ID
func (r *GormPayrollEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PayrollEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a payroll entry by ID
func (r *GormPayrollEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Entry, error) {
	var model models.PayrollEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns entries matching the filter, latest period first
func (r *GormPayrollEntryRepository) FindAll(ctx context.Context, filter payroll.EntryFilter) ([]*payroll.Entry, int64, error) {
	var rows []*models.PayrollEntryModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PayrollEntryModel{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = withinRange(query, "period_start", filter.DateRange)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query.Order("period_start DESC, employee_name ASC"), filter.Page, filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*payroll.Entry, len(rows))
	for i, m := range rows {
		entries[i] = m.ToDomain()
	}
	return entries, total, nil
}

var (
	_ payroll.EmployeeRepository = (*GormEmployeeRepository)(nil)
	_ payroll.EntryRepository    = (*GormPayrollEntryRepository)(nil)
)
