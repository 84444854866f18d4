package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKitchenRepository implements kitchen.Repository using GORM
type GormKitchenRepository struct {
	db *gorm.DB
}

// NewGormKitchenRepository creates a new GormKitchenRepository
func NewGormKitchenRepository(db *gorm.DB) *GormKitchenRepository {
	return &GormKitchenRepository{db: db}
}

// Create inserts the ticket with its lines
func (r *GormKitchenRepository) Create(ctx context.Context, order *kitchen.Order) error {
	return r.db.WithContext(ctx).Create(models.KitchenOrderModelFromDomain(order)).Error
}

// Update writes status and timestamps; lines never change after creation
func (r *GormKitchenRepository) Update(ctx context.Context, order *kitchen.Order) error {
	model := models.KitchenOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// FindByID finds a ticket with its lines
func (r *GormKitchenRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Order, error) {
	var model models.KitchenOrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns matching tickets oldest first
func (r *GormKitchenRepository) FindAll(ctx context.Context, filter kitchen.Filter) ([]*kitchen.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items")
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.SaleID != nil {
		query = query.Where("sale_id = ?", *filter.SaleID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return r.find(query.Order("created_at ASC"))
}

// FindBySaleID returns every ticket sent for a sale
func (r *GormKitchenRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]*kitchen.Order, error) {
	return r.find(r.db.WithContext(ctx).Preload("Items").Where("sale_id = ?", saleID).Order("created_at ASC"))
}

func (r *GormKitchenRepository) find(query *gorm.DB) ([]*kitchen.Order, error) {
	var rows []*models.KitchenOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*kitchen.Order, len(rows))
	for i, m := range rows {
		orders[i] = m.ToDomain()
	}
	return orders, nil
}

var _ kitchen.Repository = (*GormKitchenRepository)(nil)
