package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/shopspring/decimal"
)

// KitchenOrderModel is the persistence model for a kitchen ticket.
type KitchenOrderModel struct {
	BaseModel
	SaleID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	SaleNumber  string         `gorm:"type:varchar(30);not null"`
	TableLabel  string         `gorm:"column:table_name;type:varchar(50)"`
	OrderType   string         `gorm:"type:varchar(20);not null"`
	Status      kitchen.Status `gorm:"type:varchar(20);not null;index"`
	Notes       string         `gorm:"type:text"`
	StartedAt   *time.Time
	ReadyAt     *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	Items       []KitchenOrderItemModel `gorm:"foreignKey:KitchenOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (KitchenOrderModel) TableName() string {
	return "kitchen_orders"
}

// ToDomain converts the persistence model to a domain kitchen Order.
func (m *KitchenOrderModel) ToDomain() *kitchen.Order {
	o := &kitchen.Order{
		BaseAggregateRoot: m.BaseModel.ToAggregateRoot(),
		SaleID:            m.SaleID,
		SaleNumber:        m.SaleNumber,
		TableName:         m.TableLabel,
		OrderType:         m.OrderType,
		Status:            m.Status,
		Notes:             m.Notes,
		StartedAt:         m.StartedAt,
		ReadyAt:           m.ReadyAt,
		DeliveredAt:       m.DeliveredAt,
		CancelledAt:       m.CancelledAt,
		Items:             make([]kitchen.Item, len(m.Items)),
	}
	for i, it := range m.Items {
		mods := make([]string, 0)
		if it.ModifiersJSON != "" {
			_ = json.Unmarshal([]byte(it.ModifiersJSON), &mods)
		}
		o.Items[i] = kitchen.Item{
			ID:             it.ID,
			KitchenOrderID: it.KitchenOrderID,
			SaleItemID:     it.SaleItemID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			Modifiers:      mods,
			Notes:          it.Notes,
		}
	}
	return o
}

// KitchenOrderModelFromDomain creates a new persistence model from a domain kitchen Order.
func KitchenOrderModelFromDomain(o *kitchen.Order) *KitchenOrderModel {
	m := &KitchenOrderModel{
		SaleID:      o.SaleID,
		SaleNumber:  o.SaleNumber,
		TableLabel:  o.TableName,
		OrderType:   o.OrderType,
		Status:      o.Status,
		Notes:       o.Notes,
		StartedAt:   o.StartedAt,
		ReadyAt:     o.ReadyAt,
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
		Items:       make([]KitchenOrderItemModel, len(o.Items)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for i, it := range o.Items {
		m.Items[i] = KitchenOrderItemModel{
			ID:             it.ID,
			KitchenOrderID: o.ID,
			SaleItemID:     it.SaleItemID,
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			ModifiersJSON:  marshalJSONList(it.Modifiers),
			Notes:          it.Notes,
		}
	}
	return m
}

// KitchenOrderItemModel is the persistence model for a line on a kitchen ticket.
type KitchenOrderItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	KitchenOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	ModifiersJSON  string          `gorm:"column:modifiers;type:jsonb;not null;default:'[]'"`
	Notes          string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (KitchenOrderItemModel) TableName() string {
	return "kitchen_order_items"
}
