package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemModifier is a modifier option copied onto a sale line at order time
type ItemModifier struct {
	Group      string          `json:"group"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// Label renders the modifier for tickets
func (m ItemModifier) Label() string {
	return m.Group + ": " + m.Name
}

// LineInput is everything needed to price one sale line. UnitPrice is the
// tax-inclusive price with modifiers already added.
type LineInput struct {
	ProductID     uuid.UUID
	ProductName   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	UnitCost      decimal.Decimal
	Modifiers     []ItemModifier
	Notes         string
	SendToKitchen bool
}

// SaleItem is a priced line of a sale
type SaleItem struct {
	ID            uuid.UUID
	SaleID        uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	Subtotal      decimal.Decimal // net of tax
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal // tax-inclusive, after discount
	UnitCost      decimal.Decimal
	Modifiers     []ItemModifier
	Notes         string
	SendToKitchen bool
	CreatedAt     time.Time
}

// NewSaleItem prices a line: total = unit price x quantity - discount,
// then the total is split into net subtotal and tax at the line's rate.
func NewSaleItem(saleID uuid.UUID, in LineInput) (*SaleItem, error) {
	if in.ProductID == uuid.Nil {
		return nil, shared.NewValidationError("Sale item product is required")
	}
	qty := shared.RoundQuantity(in.Quantity)
	if !qty.IsPositive() {
		return nil, shared.NewValidationError("Quantity must be greater than zero for " + in.ProductName)
	}
	if in.UnitPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}
	if in.Discount.IsNegative() {
		return nil, shared.NewValidationError("Discount cannot be negative")
	}
	if !shared.ValidTaxRate(in.TaxRate) {
		return nil, shared.NewValidationError("Tax rate must be between 0 and 100")
	}

	unitPrice := shared.RoundMoney(in.UnitPrice)
	gross := shared.RoundMoney(unitPrice.Mul(qty))
	discount := shared.RoundMoney(in.Discount)
	if discount.GreaterThan(gross) {
		return nil, shared.NewValidationError("Discount cannot exceed the line amount for " + in.ProductName)
	}
	total := gross.Sub(discount)
	subtotal, tax := shared.SplitInclusive(total, in.TaxRate)

	return &SaleItem{
		ID:            uuid.New(),
		SaleID:        saleID,
		ProductID:     in.ProductID,
		ProductName:   strings.TrimSpace(in.ProductName),
		Quantity:      qty,
		UnitPrice:     unitPrice,
		Discount:      discount,
		TaxRate:       in.TaxRate,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		Total:         total,
		UnitCost:      in.UnitCost.Round(4),
		Modifiers:     in.Modifiers,
		Notes:         strings.TrimSpace(in.Notes),
		SendToKitchen: in.SendToKitchen,
		CreatedAt:     time.Now(),
	}, nil
}

// Gross returns the line amount before discount
func (i *SaleItem) Gross() decimal.Decimal {
	return i.Total.Add(i.Discount)
}

// CostTotal returns unit cost x quantity
func (i *SaleItem) CostTotal() decimal.Decimal {
	return shared.RoundMoney(i.UnitCost.Mul(i.Quantity))
}

// ModifierLabels renders all modifiers for tickets
func (i *SaleItem) ModifierLabels() []string {
	labels := make([]string, len(i.Modifiers))
	for idx, m := range i.Modifiers {
		labels[idx] = m.Label()
	}
	return labels
}
