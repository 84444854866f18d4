package sales

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/catalog"
	"github.com/restopos/backend/internal/domain/inventory"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// lockProducts loads and locks every product referenced by the lines.
// Unknown and inactive products are rejected.
func lockProducts(ctx context.Context, repos TransactionalRepositories, lines []SaleLineRequest) (map[uuid.UUID]*catalog.Product, error) {
	seen := make(map[uuid.UUID]decimal.Decimal, len(lines))
	for _, l := range lines {
		seen[l.ProductID] = decimal.Zero
	}
	ids := sortedIDs(seen)

	found, err := repos.ProductRepo().FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			return nil, shared.NewValidationError("Product not found: " + id.String())
		}
		if !p.Active {
			return nil, shared.NewValidationError("Product " + p.Name + " is not available")
		}
	}
	return products, nil
}

// deductStock removes sold quantities from tracked products (already locked)
// and from the ingredients of their recipes
func (s *SaleService) deductStock(ctx context.Context, repos TransactionalRepositories, products map[uuid.UUID]*catalog.Product, sold map[uuid.UUID]decimal.Decimal) error {
	for _, id := range sortedIDs(sold) {
		p := products[id]
		if p == nil || !p.TrackStock {
			continue
		}
		if err := p.DeductStock(sold[id]); err != nil {
			return err
		}
		if err := repos.ProductRepo().UpdateStock(ctx, p.ID, p.Stock); err != nil {
			return err
		}
	}
	return s.moveIngredients(ctx, repos, sold, true)
}

// restoreStock returns the quantities of a reversed sale
func (s *SaleService) restoreStock(ctx context.Context, repos TransactionalRepositories, sold map[uuid.UUID]decimal.Decimal) error {
	if len(sold) == 0 {
		return nil
	}
	products, err := repos.ProductRepo().FindByIDsForUpdate(ctx, sortedIDs(sold))
	if err != nil {
		return err
	}
	for _, p := range products {
		if !p.TrackStock {
			continue
		}
		p.RestoreStock(sold[p.ID])
		if err := repos.ProductRepo().UpdateStock(ctx, p.ID, p.Stock); err != nil {
			return err
		}
	}
	return s.moveIngredients(ctx, repos, sold, false)
}

func (s *SaleService) moveIngredients(ctx context.Context, repos TransactionalRepositories, sold map[uuid.UUID]decimal.Decimal, consume bool) error {
	lines, err := repos.RecipeRepo().FindLinesByProductIDs(ctx, sortedIDs(sold))
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	need := inventory.Consumption(lines, sold)
	items, err := repos.ItemRepo().FindByIDsForUpdate(ctx, sortedIDs(need))
	if err != nil {
		return err
	}
	for _, item := range items {
		qty := need[item.ID]
		if consume {
			if item.Consume(qty) {
				s.logger.Warn("Inventory item stock below zero",
					zap.String("item_id", item.ID.String()),
					zap.String("item", item.Name),
					zap.String("stock", item.Stock.String()))
			}
		} else {
			item.Restore(qty)
		}
		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// sortedIDs returns the keys in a stable order so row locks are always
// taken in the same sequence
func sortedIDs(m map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
