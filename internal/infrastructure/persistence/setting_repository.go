package persistence

import (
	"context"
	"errors"

	"github.com/restopos/backend/internal/domain/settings"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindAll returns every entry ordered by key
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	var rows []models.SettingModel
	if err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]settings.Setting, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByKey returns a single entry
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).Where(map[string]any{"key": key}).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	s := model.ToDomain()
	return &s, nil
}

// Upsert inserts or overwrites the given entries in one transaction
func (r *GormSettingRepository) Upsert(ctx context.Context, entries ...*settings.Setting) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.SettingModel, len(entries))
	for i, s := range entries {
		rows[i] = models.SettingModelFromDomain(s)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

var _ settings.Repository = (*GormSettingRepository)(nil)
