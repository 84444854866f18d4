package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/floor"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormZoneRepository implements ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// Create creates a new zone
func (r *GormZoneRepository) Create(ctx context.Context, zone *floor.Zone) error {
	return r.db.WithContext(ctx).Create(models.ZoneModelFromDomain(zone)).Error
}

// Update updates an existing zone
func (r *GormZoneRepository) Update(ctx context.Context, zone *floor.Zone) error {
	return r.db.WithContext(ctx).Save(models.ZoneModelFromDomain(zone)).Error
}

// Delete deletes a zone by ID
func (r *GormZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ZoneModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a zone by ID
func (r *GormZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*floor.Zone, error) {
	var model models.ZoneModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns zones in display order
func (r *GormZoneRepository) FindAll(ctx context.Context) ([]*floor.Zone, error) {
	var rows []*models.ZoneModel
	if err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	zones := make([]*floor.Zone, len(rows))
	for i, m := range rows {
		zones[i] = m.ToDomain()
	}
	return zones, nil
}

// CountTables counts the tables placed in the zone
func (r *GormZoneRepository) CountTables(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TableModel{}).Where("zone_id = ?", id).Count(&count).Error
	return count, err
}

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// Create creates a new table
func (r *GormTableRepository) Create(ctx context.Context, table *floor.Table) error {
	return r.db.WithContext(ctx).Create(models.TableModelFromDomain(table)).Error
}

// Update updates an existing table, status and current sale included
func (r *GormTableRepository) Update(ctx context.Context, table *floor.Table) error {
	return r.db.WithContext(ctx).Save(models.TableModelFromDomain(table)).Error
}

// Delete deletes a table by ID
func (r *GormTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TableModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a table by ID
func (r *GormTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*floor.Table, error) {
	return r.findOne(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds and locks a table row
func (r *GormTableRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*floor.Table, error) {
	return r.findOne(forUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormTableRepository) findOne(query *gorm.DB, id uuid.UUID) (*floor.Table, error) {
	var model models.TableModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns tables, optionally restricted to one zone
func (r *GormTableRepository) FindAll(ctx context.Context, zoneID *uuid.UUID) ([]*floor.Table, error) {
	var rows []*models.TableModel
	query := r.db.WithContext(ctx).Model(&models.TableModel{})
	if zoneID != nil {
		query = query.Where("zone_id = ?", *zoneID)
	}
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	tables := make([]*floor.Table, len(rows))
	for i, m := range rows {
		tables[i] = m.ToDomain()
	}
	return tables, nil
}

// ExistsByName checks for a table with the same name in the zone
func (r *GormTableRepository) ExistsByName(ctx context.Context, zoneID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TableModel{}).
		Where("zone_id = ? AND LOWER(name) = ?", zoneID, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var (
	_ floor.ZoneRepository  = (*GormZoneRepository)(nil)
	_ floor.TableRepository = (*GormTableRepository)(nil)
)
