package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements ItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// Create creates a new inventory item
func (r *GormInventoryItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Create(models.InventoryItemModelFromDomain(item)).Error
}

// Update updates an existing inventory item, stock and cost included
func (r *GormInventoryItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(models.InventoryItemModelFromDomain(item)).Error
}

// Delete deletes an inventory item by ID
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an inventory item by ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the given items
func (r *GormInventoryItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Item, error) {
	return r.findByIDs(r.db.WithContext(ctx), ids)
}

// FindByIDsForUpdate loads and locks the given items in ID order
func (r *GormInventoryItemRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*inventory.Item, error) {
	return r.findByIDs(forUpdate(r.db.WithContext(ctx)).Order("id ASC"), ids)
}

func (r *GormInventoryItemRepository) findByIDs(query *gorm.DB, ids []uuid.UUID) ([]*inventory.Item, error) {
	if len(ids) == 0 {
		return []*inventory.Item{}, nil
	}
	var rows []*models.InventoryItemModel
	if err := query.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*inventory.Item, len(rows))
	for i, m := range rows {
		items[i] = m.ToDomain()
	}
	return items, nil
}

// FindAll returns items matching the filter with pagination
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter inventory.ItemFilter) ([]*inventory.Item, int64, error) {
	var rows []*models.InventoryItemModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InventoryItemModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.LowOnly {
		query = query.Where("stock <= min_stock")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = orderBy(query, filter.OrderBy, filter.OrderDir, InventoryItemSortFields, "name")
	if err := paginate(query, filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*inventory.Item, len(rows))
	for i, m := range rows {
		items[i] = m.ToDomain()
	}
	return items, total, nil
}

// ExistsByName checks for another item with the same name, case-insensitively
func (r *GormInventoryItemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsReferenced reports whether recipes or purchases point at the item
func (r *GormInventoryItemRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RecipeLineModel{}).
		Where("inventory_item_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.InventoryPurchaseModel{}).
		Where("inventory_item_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Create records a purchase
func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *inventory.Purchase) error {
	return r.db.WithContext(ctx).Create(models.InventoryPurchaseModelFromDomain(purchase)).Error
}

// FindAll returns purchases matching the filter, newest first
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter inventory.PurchaseFilter) ([]*inventory.Purchase, int64, error) {
	var rows []*models.InventoryPurchaseModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.InventoryPurchaseModel{})
	if filter.InventoryItemID != nil {
		query = query.Where("inventory_item_id = ?", *filter.InventoryItemID)
	}
	query = withinRange(query, "purchased_at", filter.DateRange)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query.Order("purchased_at DESC"), filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	purchases := make([]*inventory.Purchase, len(rows))
	for i, m := range rows {
		purchases[i] = m.ToDomain()
	}
	return purchases, total, nil
}

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByProductID returns the product's recipe; a product without lines has an empty recipe
func (r *GormRecipeRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.Recipe, error) {
	lines, err := r.FindLinesByProductIDs(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}
	return &inventory.Recipe{ProductID: productID, Lines: lines}, nil
}

// FindLinesByProductIDs returns every line for the given products
func (r *GormRecipeRepository) FindLinesByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]inventory.RecipeLine, error) {
	if len(productIDs) == 0 {
		return []inventory.RecipeLine{}, nil
	}
	var rows []models.RecipeLineModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("product_id, inventory_item_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]inventory.RecipeLine, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// Replace deletes the product's lines and inserts the recipe's
func (r *GormRecipeRepository) Replace(ctx context.Context, recipe *inventory.Recipe) error {
	rows := make([]models.RecipeLineModel, len(recipe.Lines))
	for i, l := range recipe.Lines {
		rows[i] = models.RecipeLineModelFromDomain(l)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", recipe.ProductID).Delete(&models.RecipeLineModel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

var (
	_ inventory.ItemRepository     = (*GormInventoryItemRepository)(nil)
	_ inventory.PurchaseRepository = (*GormPurchaseRepository)(nil)
	_ inventory.RecipeRepository   = (*GormRecipeRepository)(nil)
)
