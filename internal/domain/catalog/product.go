package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a menu item. Price is the PVP (tax-inclusive).
type Product struct {
	shared.BaseAggregateRoot
	CategoryID     uuid.UUID
	Code           string
	Name           string
	Description    string
	Price          decimal.Decimal
	Cost           decimal.Decimal
	TaxRate        decimal.Decimal
	TrackStock     bool
	Stock          decimal.Decimal
	SendToKitchen  bool
	ImageKey       string
	Active         bool
	ModifierGroups []ModifierGroup
}

// ProductInput carries the editable fields of a product
type ProductInput struct {
	CategoryID    uuid.UUID
	Code          string
	Name          string
	Description   string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	TaxRate       decimal.Decimal
	TrackStock    bool
	SendToKitchen bool
}

// NewProduct creates an active product
func NewProduct(input ProductInput) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Stock:             decimal.Zero,
		Active:            true,
	}
	if err := p.Update(input); err != nil {
		return nil, err
	}
	return p, nil
}

// Update validates and applies the editable fields
func (p *Product) Update(input ProductInput) error {
	if input.CategoryID == uuid.Nil {
		return shared.NewValidationError("Product category is required")
	}
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || len(code) > 50 {
		return shared.NewValidationError("Product code must have between 1 and 50 characters")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 200 {
		return shared.NewValidationError("Product name must have between 1 and 200 characters")
	}
	if input.Price.IsNegative() {
		return shared.NewValidationError("Product price cannot be negative")
	}
	if input.Cost.IsNegative() {
		return shared.NewValidationError("Product cost cannot be negative")
	}
	if !shared.ValidTaxRate(input.TaxRate) {
		return shared.NewValidationError("Tax rate must be between 0 and 100")
	}

	p.CategoryID = input.CategoryID
	p.Code = code
	p.Name = name
	p.Description = strings.TrimSpace(input.Description)
	p.Price = shared.RoundMoney(input.Price)
	p.Cost = input.Cost.Round(4)
	p.TaxRate = input.TaxRate
	p.TrackStock = input.TrackStock
	p.SendToKitchen = input.SendToKitchen
	p.Touch()
	return nil
}

// SetActive toggles availability for ordering
func (p *Product) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// SetCost overrides the unit cost, used when the recipe cost is recalculated
func (p *Product) SetCost(cost decimal.Decimal) {
	p.Cost = cost.Round(4)
	p.Touch()
}

// SetImage attaches the storage key of the product image
func (p *Product) SetImage(key string) {
	p.ImageKey = key
	p.Touch()
}

// NetPrice returns the price without tax
func (p *Product) NetPrice() decimal.Decimal {
	net, _ := shared.SplitInclusive(p.Price, p.TaxRate)
	return net
}

// Margin returns the gross margin percentage on the net price
func (p *Product) Margin() decimal.Decimal {
	net := p.NetPrice()
	return shared.Percent(net.Sub(p.Cost), net)
}

// SetModifierGroups replaces the product's modifier groups, assigning fresh IDs
func (p *Product) SetModifierGroups(groups []ModifierGroup) error {
	seen := make(map[string]bool, len(groups))
	for i := range groups {
		g := &groups[i]
		if err := g.validate(); err != nil {
			return err
		}
		key := NameKey(g.Name)
		if seen[key] {
			return shared.NewValidationError("Duplicate modifier group " + g.Name)
		}
		seen[key] = true
		g.ID = uuid.New()
		g.ProductID = p.ID
		for j := range g.Options {
			g.Options[j].ID = uuid.New()
			g.Options[j].GroupID = g.ID
		}
	}
	p.ModifierGroups = groups
	p.Touch()
	return nil
}

// ResolveModifiers validates the chosen option IDs against the product's groups
// and returns the selected options with their summed price delta
func (p *Product) ResolveModifiers(optionIDs []uuid.UUID) (Selection, error) {
	sel := Selection{PriceDelta: decimal.Zero}
	chosen := make(map[uuid.UUID]bool, len(optionIDs))
	for _, id := range optionIDs {
		if chosen[id] {
			return sel, shared.NewValidationError("Modifier option selected twice for " + p.Name)
		}
		chosen[id] = true
	}

	matched := 0
	for _, g := range p.ModifierGroups {
		count := 0
		for _, opt := range g.Options {
			if !chosen[opt.ID] {
				continue
			}
			if !opt.Active {
				return sel, shared.NewValidationError("Modifier option " + opt.Name + " is not available")
			}
			count++
			sel.Modifiers = append(sel.Modifiers, SelectedModifier{
				OptionID:   opt.ID,
				Group:      g.Name,
				Name:       opt.Name,
				PriceDelta: opt.PriceDelta,
			})
			sel.PriceDelta = sel.PriceDelta.Add(opt.PriceDelta)
		}
		if count < g.MinSelect {
			return sel, shared.NewValidationError("Modifier group " + g.Name + " requires a selection for " + p.Name)
		}
		if g.MaxSelect > 0 && count > g.MaxSelect {
			return sel, shared.NewValidationError("Too many options selected in " + g.Name + " for " + p.Name)
		}
		matched += count
	}
	if matched != len(chosen) {
		return sel, shared.NewValidationError("Unknown modifier option for " + p.Name)
	}
	return sel, nil
}

// DeductStock removes sold units from a stock-tracked product
func (p *Product) DeductStock(qty decimal.Decimal) error {
	if !p.TrackStock {
		return nil
	}
	if p.Stock.LessThan(qty) {
		return shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock for "+p.Name)
	}
	p.Stock = shared.RoundQuantity(p.Stock.Sub(qty))
	p.Touch()
	return nil
}

// RestoreStock returns units to a stock-tracked product
func (p *Product) RestoreStock(qty decimal.Decimal) {
	if !p.TrackStock {
		return
	}
	p.Stock = shared.RoundQuantity(p.Stock.Add(qty))
	p.Touch()
}

// AdjustStock applies a manual correction; the result cannot be negative
func (p *Product) AdjustStock(delta decimal.Decimal) error {
	if !p.TrackStock {
		return shared.NewInvalidStateError("Product " + p.Name + " does not track stock")
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError(shared.CodeInsufficientStock, "Stock adjustment would leave "+p.Name+" negative")
	}
	p.Stock = shared.RoundQuantity(next)
	p.Touch()
	return nil
}

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     string
	Active     *bool
	OrderBy    string
	OrderDir   string
	Page       int
	PageSize   int
}

// ProductRepository persists products together with their modifier groups
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	// FindByIDsForUpdate locks the rows until the surrounding transaction ends
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	// ReplaceModifierGroups deletes and re-inserts the product's groups and options
	ReplaceModifierGroups(ctx context.Context, product *Product) error
	// UpdateStock writes only the stock column
	UpdateStock(ctx context.Context, id uuid.UUID, stock decimal.Decimal) error
}
