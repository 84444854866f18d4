package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToAggregateRoot converts BaseModel to a domain BaseAggregateRoot with no pending events
func (m *BaseModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.ToDomain()}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every persistence model, in dependency order, for AutoMigrate in tests
// and for tooling that needs the full table list.
func All() []any {
	return []any{
		&UserModel{},
		&SettingModel{},
		&CategoryModel{},
		&ProductModel{},
		&ModifierGroupModel{},
		&ModifierOptionModel{},
		&ZoneModel{},
		&TableModel{},
		&SalesPeriodModel{},
		&CashWithdrawalModel{},
		&SaleModel{},
		&SaleItemModel{},
		&InvoiceModel{},
		&KitchenOrderModel{},
		&KitchenOrderItemModel{},
		&InventoryItemModel{},
		&InventoryPurchaseModel{},
		&RecipeLineModel{},
		&EmployeeModel{},
		&PayrollEntryModel{},
		&InvestmentModel{},
	}
}
