package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/finance"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvestmentRepository implements InvestmentRepository using GORM
type GormInvestmentRepository struct {
	db *gorm.DB
}

// NewGormInvestmentRepository creates a new GormInvestmentRepository
func NewGormInvestmentRepository(db *gorm.DB) *GormInvestmentRepository {
	return &GormInvestmentRepository{db: db}
}

// Create creates a new investment
func (r *GormInvestmentRepository) Create(ctx context.Context, i *finance.Investment) error {
	return r.db.WithContext(ctx).Create(models.InvestmentModelFromDomain(i)).Error
}

// Update updates an existing investment
func (r *GormInvestmentRepository) Update(ctx context.Context, i *finance.Investment) error {
	return r.db.WithContext(ctx).Save(models.InvestmentModelFromDomain(i)).Error
}

// Delete deletes an investment by ID
func (r *GormInvestmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvestmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an investment by ID
func (r *GormInvestmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Investment, error) {
	var model models.InvestmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormInvestmentRepository) filtered(ctx context.Context, filter finance.InvestmentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.InvestmentModel{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	return withinRange(query, "invested_at", filter.DateRange)
}

// FindAll returns investments matching the filter, newest first
func (r *GormInvestmentRepository) FindAll(ctx context.Context, filter finance.InvestmentFilter) ([]*finance.Investment, int64, error) {
	var rows []*models.InvestmentModel
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query.Order("invested_at DESC"), filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	investments := make([]*finance.Investment, len(rows))
	for i, m := range rows {
		investments[i] = m.ToDomain()
	}
	return investments, total, nil
}

// SumAmount totals the investments matching the filter, ignoring paging
func (r *GormInvestmentRepository) SumAmount(ctx context.Context, filter finance.InvestmentFilter) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	if err := r.filtered(ctx, filter).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return shared.RoundMoney(row.Total), nil
}

var _ finance.InvestmentRepository = (*GormInvestmentRepository)(nil)
