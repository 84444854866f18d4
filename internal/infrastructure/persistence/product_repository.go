package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func preloadModifiers(query *gorm.DB) *gorm.DB {
	return query.
		Preload("ModifierGroups", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("ModifierGroups.Options", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") })
}

// Create inserts the product together with its modifier groups and options
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error
}

// Update writes the product columns; modifier groups go through ReplaceModifierGroups
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// Delete soft-deletes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a product with its modifier groups
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := preloadModifiers(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the given products; missing IDs are simply absent from the result
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	return r.findByIDs(preloadModifiers(r.db.WithContext(ctx)), ids)
}

// FindByIDsForUpdate loads and locks the given products in ID order
func (r *GormProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	return r.findByIDs(preloadModifiers(forUpdate(r.db.WithContext(ctx))).Order("id ASC"), ids)
}

func (r *GormProductRepository) findByIDs(query *gorm.DB, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var rows []*models.ProductModel
	if err := query.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, len(rows))
	for i, m := range rows {
		products[i] = m.ToDomain()
	}
	return products, nil
}

// FindAll returns products matching the filter with pagination
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	var rows []*models.ProductModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = preloadModifiers(orderBy(query, filter.OrderBy, filter.OrderDir, ProductSortFields, "name"))
	if err := paginate(query, filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*catalog.Product, len(rows))
	for i, m := range rows {
		products[i] = m.ToDomain()
	}
	return products, total, nil
}

// ExistsByCode checks whether a live product already uses the code
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceModifierGroups deletes and re-inserts the product's groups and options
func (r *GormProductRepository) ReplaceModifierGroups(ctx context.Context, product *catalog.Product) error {
	groups := models.ModifierGroupModelsFromDomain(product.ModifierGroups)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groupIDs := tx.Model(&models.ModifierGroupModel{}).Select("id").Where("product_id = ?", product.ID)
		if err := tx.Where("group_id IN (?)", groupIDs).Delete(&models.ModifierOptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ModifierGroupModel{}).Error; err != nil {
			return err
		}
		if len(groups) == 0 {
			return nil
		}
		return tx.Create(&groups).Error
	})
}

// UpdateStock writes only the stock column
func (r *GormProductRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", id).
		Update("stock", shared.RoundQuantity(stock))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
