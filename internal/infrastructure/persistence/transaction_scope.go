package persistence

import (
	"context"

	appcashier "github.com/restopos/backend/internal/application/cashier"
	appinv "github.com/restopos/backend/internal/application/inventory"
	appsales "github.com/restopos/backend/internal/application/sales"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/floor"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope runs repository operations inside one GORM transaction.
// If the function returns an error, the transaction is rolled back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

func (s *GormTransactionScope) run(ctx context.Context, fn func(repos *gormTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// Inventory returns the scope used by the inventory service
func (s *GormTransactionScope) Inventory() appinv.TransactionScope {
	return inventoryScope{s}
}

// Cashier returns the scope used by the period service
func (s *GormTransactionScope) Cashier() appcashier.TransactionScope {
	return cashierScope{s}
}

// Sales returns the scope used by the sale service
func (s *GormTransactionScope) Sales() appsales.TransactionScope {
	return salesScope{s}
}

type inventoryScope struct{ *GormTransactionScope }

func (s inventoryScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type cashierScope struct{ *GormTransactionScope }

func (s cashierScope) Execute(ctx context.Context, fn func(repos appcashier.TransactionalRepositories) error) error {
	return s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type salesScope struct{ *GormTransactionScope }

func (s salesScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// InvoiceRepo returns the invoice repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InvoiceRepo() sales.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// ItemRepo returns the inventory item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// PurchaseRepo returns the purchase repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseRepo() inventory.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// RecipeRepo returns the recipe repository scoped to the current transaction.
func (r *gormTransactionalRepositories) RecipeRepo() inventory.RecipeRepository {
	return NewGormRecipeRepository(r.tx)
}

// TableRepo returns the table repository scoped to the current transaction.
func (r *gormTransactionalRepositories) TableRepo() floor.TableRepository {
	return NewGormTableRepository(r.tx)
}

// PeriodRepo returns the period repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PeriodRepo() cashier.PeriodRepository {
	return NewGormPeriodRepository(r.tx)
}

// WithdrawalRepo returns the withdrawal repository scoped to the current transaction.
func (r *gormTransactionalRepositories) WithdrawalRepo() cashier.WithdrawalRepository {
	return NewGormWithdrawalRepository(r.tx)
}

// KitchenRepo returns the kitchen order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) KitchenRepo() kitchen.Repository {
	return NewGormKitchenRepository(r.tx)
}

var (
	_ appinv.TransactionalRepositories     = (*gormTransactionalRepositories)(nil)
	_ appcashier.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ appsales.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
)
