package sales

import (
	"context"

	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/floor"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to every repository a sale touches.
// Stock, table, kitchen and payment changes commit or roll back with the sale.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to one transaction
type TransactionalRepositories interface {
	SaleRepo() sales.SaleRepository
	InvoiceRepo() sales.InvoiceRepository
	ProductRepo() catalog.ProductRepository
	ItemRepo() inventory.ItemRepository
	RecipeRepo() inventory.RecipeRepository
	TableRepo() floor.TableRepository
	PeriodRepo() cashier.PeriodRepository
	KitchenRepo() kitchen.Repository
}

// Repositories groups the plain repositories handed to NewNoOpTransactionScope
type Repositories struct {
	Sales    sales.SaleRepository
	Invoices sales.InvoiceRepository
	Products catalog.ProductRepository
	Items    inventory.ItemRepository
	Recipes  inventory.RecipeRepository
	Tables   floor.TableRepository
	Periods  cashier.PeriodRepository
	Kitchen  kitchen.Repository
}

// NoOpTransactionScope runs the function against plain repositories.
// This is useful for testing.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository {
	return s.repos.Sales
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() sales.InvoiceRepository {
	return s.repos.Invoices
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.repos.Products
}

// ItemRepo returns the inventory item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.repos.Items
}

// RecipeRepo returns the recipe repository
func (s *NoOpTransactionScope) RecipeRepo() inventory.RecipeRepository {
	return s.repos.Recipes
}

// TableRepo returns the table repository
func (s *NoOpTransactionScope) TableRepo() floor.TableRepository {
	return s.repos.Tables
}

// PeriodRepo returns the sales period repository
func (s *NoOpTransactionScope) PeriodRepo() cashier.PeriodRepository {
	return s.repos.Periods
}

// KitchenRepo returns the kitchen order repository
func (s *NoOpTransactionScope) KitchenRepo() kitchen.Repository {
	return s.repos.Kitchen
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
