package models

import (
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/floor"
)

// ZoneModel is the persistence model for a dining zone.
type ZoneModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
	Active    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ZoneModel) TableName() string {
	return "zones"
}

// ToDomain converts the persistence model to a domain Zone.
func (m *ZoneModel) ToDomain() *floor.Zone {
	return &floor.Zone{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		SortOrder:  m.SortOrder,
		Active:     m.Active,
	}
}

// ZoneModelFromDomain creates a new persistence model from a domain Zone.
func ZoneModelFromDomain(z *floor.Zone) *ZoneModel {
	m := &ZoneModel{Name: z.Name, SortOrder: z.SortOrder, Active: z.Active}
	m.FromDomainBaseEntity(z.BaseEntity)
	return m
}

// TableModel is the persistence model for a dining table.
type TableModel struct {
	BaseModel
	ZoneID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_tables_zone_name,priority:1"`
	Name          string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_tables_zone_name,priority:2"`
	Capacity      int               `gorm:"not null"`
	Status        floor.TableStatus `gorm:"type:varchar(20);not null;default:'free'"`
	CurrentSaleID *uuid.UUID        `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (TableModel) TableName() string {
	return "tables"
}

// ToDomain converts the persistence model to a domain Table.
func (m *TableModel) ToDomain() *floor.Table {
	return &floor.Table{
		BaseEntity:    m.BaseModel.ToDomain(),
		ZoneID:        m.ZoneID,
		Name:          m.Name,
		Capacity:      m.Capacity,
		Status:        m.Status,
		CurrentSaleID: m.CurrentSaleID,
	}
}

// TableModelFromDomain creates a new persistence model from a domain Table.
func TableModelFromDomain(t *floor.Table) *TableModel {
	m := &TableModel{
		ZoneID:        t.ZoneID,
		Name:          t.Name,
		Capacity:      t.Capacity,
		Status:        t.Status,
		CurrentSaleID: t.CurrentSaleID,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
