package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService manages ingredients, purchases and recipes
type InventoryService struct {
	itemRepo     inventory.ItemRepository
	purchaseRepo inventory.PurchaseRepository
	recipeRepo   inventory.RecipeRepository
	productRepo  catalog.ProductRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	itemRepo inventory.ItemRepository,
	purchaseRepo inventory.PurchaseRepository,
	recipeRepo inventory.RecipeRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		itemRepo:     itemRepo,
		purchaseRepo: purchaseRepo,
		recipeRepo:   recipeRepo,
		productRepo:  productRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// CreateItem creates an inventory item
func (s *InventoryService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if err := s.ensureUniqueName(ctx, req.Name, nil); err != nil {
		return nil, err
	}
	item, err := inventory.NewItem(req.Name, inventory.Unit(req.Unit), req.MinStock, req.UnitCost)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// GetItem retrieves an inventory item
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// ListItems lists inventory items with pagination
func (s *InventoryService) ListItems(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	items, total, err := s.itemRepo.FindAll(ctx, inventory.ItemFilter{
		Search:   filter.Search,
		Active:   filter.Active,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToItemResponses(items), total, nil
}

// LowStock lists active items at or below their minimum
func (s *InventoryService) LowStock(ctx context.Context) ([]ItemResponse, error) {
	active := true
	items, _, err := s.itemRepo.FindAll(ctx, inventory.ItemFilter{Active: &active, LowOnly: true, PageSize: 200})
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// UpdateItem updates the editable fields of an item
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.Name, &id); err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, inventory.Unit(req.Unit), req.MinStock, req.UnitCost); err != nil {
		return nil, err
	}
	if req.Active != nil {
		item.SetActive(*req.Active)
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// DeleteItem removes an item no recipe or purchase references
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	referenced, err := s.itemRepo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewConflictError("Inventory item is used by recipes or purchases; deactivate it instead")
	}
	return s.itemRepo.Delete(ctx, id)
}

// AdjustItem applies a manual stock correction under a row lock
func (s *InventoryService) AdjustItem(ctx context.Context, id, userID uuid.UUID, req AdjustItemRequest) (*ItemResponse, error) {
	var item *inventory.Item
	var before decimal.Decimal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := lockItem(ctx, repos.ItemRepo(), id)
		if err != nil {
			return err
		}
		before = locked.Stock
		if err := locked.Adjust(req.Delta, req.Reason); err != nil {
			return err
		}
		item = locked
		return repos.ItemRepo().Update(ctx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Inventory adjusted",
		zap.String("item_id", item.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("before", before.String()),
		zap.String("after", item.Stock.String()),
		zap.String("reason", req.Reason))
	response := ToItemResponse(item)
	return &response, nil
}

// CreatePurchase receives stock and recomputes the weighted average cost in one transaction
func (s *InventoryService) CreatePurchase(ctx context.Context, userID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	var purchase *inventory.Purchase
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := lockItem(ctx, repos.ItemRepo(), req.InventoryItemID)
		if err != nil {
			return err
		}
		var purchasedAt time.Time
		if req.PurchasedAt != nil {
			purchasedAt = *req.PurchasedAt
		}
		p, err := inventory.NewPurchase(item.ID, req.Quantity, req.UnitCost, req.Supplier, req.Reference, purchasedAt, userID)
		if err != nil {
			return err
		}
		p.ItemName = item.Name
		if err := item.Receive(p.Quantity, p.UnitCost); err != nil {
			return err
		}
		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return err
		}
		if err := repos.PurchaseRepo().Create(ctx, p); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// ListPurchases lists purchases, newest first
func (s *InventoryService) ListPurchases(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	purchases, total, err := s.purchaseRepo.FindAll(ctx, inventory.PurchaseFilter{
		InventoryItemID: filter.InventoryItemID,
		DateRange:       shared.DayRange(filter.From, filter.To),
		Page:            filter.Page,
		PageSize:        filter.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]PurchaseResponse, len(purchases))
	for i, p := range purchases {
		out[i] = ToPurchaseResponse(p)
	}
	return out, total, nil
}

// GetRecipe returns the product's recipe priced with current item costs
func (s *InventoryService) GetRecipe(ctx context.Context, productID uuid.UUID) (*RecipeResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByIDs(ctx, recipe.ItemIDs())
	if err != nil {
		return nil, err
	}
	return buildRecipeResponse(product, recipe, items), nil
}

// SetRecipe replaces the product's recipe, optionally copying its cost to the product
func (s *InventoryService) SetRecipe(ctx context.Context, productID uuid.UUID, req SetRecipeRequest) (*RecipeResponse, error) {
	lines := make([]inventory.RecipeLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = inventory.RecipeLine{InventoryItemID: l.InventoryItemID, Quantity: l.Quantity}
	}
	recipe, err := inventory.NewRecipe(productID, lines)
	if err != nil {
		return nil, err
	}

	var response *RecipeResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		items, err := repos.ItemRepo().FindByIDs(ctx, recipe.ItemIDs())
		if err != nil {
			return err
		}
		if len(items) != len(recipe.Lines) {
			return shared.NewValidationError("Recipe references an unknown inventory item")
		}
		if err := repos.RecipeRepo().Replace(ctx, recipe); err != nil {
			return err
		}
		if req.ApplyCost && len(recipe.Lines) > 0 {
			product.SetCost(recipe.Cost(unitCosts(items)))
			if err := repos.ProductRepo().Update(ctx, product); err != nil {
				return err
			}
		}
		response = buildRecipeResponse(product, recipe, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// RecalculateCost copies the recipe cost at current item prices onto the product
func (s *InventoryService) RecalculateCost(ctx context.Context, productID uuid.UUID) (*RecipeResponse, error) {
	var response *RecipeResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		recipe, err := repos.RecipeRepo().FindByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if len(recipe.Lines) == 0 {
			return shared.NewInvalidStateError("Product " + product.Name + " has no recipe")
		}
		items, err := repos.ItemRepo().FindByIDs(ctx, recipe.ItemIDs())
		if err != nil {
			return err
		}
		product.SetCost(recipe.Cost(unitCosts(items)))
		if err := repos.ProductRepo().Update(ctx, product); err != nil {
			return err
		}
		response = buildRecipeResponse(product, recipe, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *InventoryService) ensureUniqueName(ctx context.Context, name string, excludeID *uuid.UUID) error {
	exists, err := s.itemRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "An inventory item with this name already exists")
	}
	return nil
}

func lockItem(ctx context.Context, repo inventory.ItemRepository, id uuid.UUID) (*inventory.Item, error) {
	items, err := repo.FindByIDsForUpdate(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewNotFoundError("Inventory item")
	}
	return items[0], nil
}

func unitCosts(items []*inventory.Item) map[uuid.UUID]decimal.Decimal {
	costs := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, i := range items {
		costs[i.ID] = i.UnitCost
	}
	return costs
}

func buildRecipeResponse(product *catalog.Product, recipe *inventory.Recipe, items []*inventory.Item) *RecipeResponse {
	byID := make(map[uuid.UUID]*inventory.Item, len(items))
	for _, i := range items {
		byID[i.ID] = i
	}
	lines := make([]RecipeLineResponse, 0, len(recipe.Lines))
	for _, l := range recipe.Lines {
		line := RecipeLineResponse{InventoryItemID: l.InventoryItemID, Quantity: l.Quantity, UnitCost: decimal.Zero}
		if item, ok := byID[l.InventoryItemID]; ok {
			line.ItemName = item.Name
			line.Unit = string(item.Unit)
			line.UnitCost = item.UnitCost
		}
		line.Cost = l.Quantity.Mul(line.UnitCost).Round(4)
		lines = append(lines, line)
	}
	return &RecipeResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		Lines:       lines,
		Cost:        recipe.Cost(unitCosts(items)),
		ProductCost: product.Cost,
	}
}
