package inventory

import (
	"context"

	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// All repository operations inside Execute commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to one transaction
type TransactionalRepositories interface {
	ItemRepo() inventory.ItemRepository
	PurchaseRepo() inventory.PurchaseRepository
	RecipeRepo() inventory.RecipeRepository
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function against plain repositories.
// This is useful for testing.
type NoOpTransactionScope struct {
	itemRepo     inventory.ItemRepository
	purchaseRepo inventory.PurchaseRepository
	recipeRepo   inventory.RecipeRepository
	productRepo  catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	itemRepo inventory.ItemRepository,
	purchaseRepo inventory.PurchaseRepository,
	recipeRepo inventory.RecipeRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:     itemRepo,
		purchaseRepo: purchaseRepo,
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.itemRepo
}

func (s *NoOpTransactionScope) PurchaseRepo() inventory.PurchaseRepository {
	return s.purchaseRepo
}

func (s *NoOpTransactionScope) RecipeRepo() inventory.RecipeRepository {
	return s.recipeRepo
}

func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
