package report

import (
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ValuationLine values one inventory item at its average cost
type ValuationLine struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"min_stock"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Value    decimal.Decimal `json:"value"`
	Low      bool            `json:"low"`
}

// InventoryValuation is the value of active inventory
type InventoryValuation struct {
	Items         []ValuationLine `json:"items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// NewInventoryValuation values each line and sums them. Negative stock is
// valued at zero.
func NewInventoryValuation(lines []ValuationLine) *InventoryValuation {
	v := &InventoryValuation{Items: lines, TotalValue: decimal.Zero}
	if v.Items == nil {
		v.Items = []ValuationLine{}
	}
	for i := range v.Items {
		l := &v.Items[i]
		if l.Stock.IsPositive() {
			l.Value = shared.RoundMoney(l.Stock.Mul(l.UnitCost))
		} else {
			l.Value = decimal.Zero
		}
		l.Low = l.Stock.LessThanOrEqual(l.MinStock)
		if l.Low {
			v.LowStockCount++
		}
		v.TotalValue = v.TotalValue.Add(l.Value)
	}
	return v
}
