package models

import (
	"time"

	"github.com/restopos/backend/internal/domain/settings"
)

// SettingModel is a row of the config table
type SettingModel struct {
	Key       string    `gorm:"column:key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "config"
}

// ToDomain converts the persistence model to a domain Setting.
func (m *SettingModel) ToDomain() settings.Setting {
	return settings.Setting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt}
}

// SettingModelFromDomain creates a new persistence model from a domain Setting.
func SettingModelFromDomain(s *settings.Setting) *SettingModel {
	return &SettingModel{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}
