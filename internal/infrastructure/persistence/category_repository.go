package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Create(models.CategoryModelFromDomain(category)).Error
}

// Update updates an existing category
func (r *GormCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(category)).Error
}

// Delete deletes a category by ID
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns categories in menu order
func (r *GormCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	var rows []*models.CategoryModel
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]*catalog.Category, len(rows))
	for i, m := range rows {
		categories[i] = m.ToDomain()
	}
	return categories, nil
}

// ExistsByName checks for another category with the same case-folded name
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, nameKey string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{}).Where("LOWER(TRIM(name)) = ?", nameKey)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountProducts counts products in the category, soft-deleted ones included
func (r *GormCategoryRepository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&models.ProductModel{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
