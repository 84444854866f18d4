package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ModifierGroup is a set of options a customer picks from when ordering a product,
// e.g. "Cooking point" or "Extras"
type ModifierGroup struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	MinSelect int
	MaxSelect int // 0 means unlimited
	SortOrder int
	Options   []ModifierOption
}

// ModifierOption is a single choice inside a group. PriceDelta is tax-inclusive.
type ModifierOption struct {
	ID         uuid.UUID
	GroupID    uuid.UUID
	Name       string
	PriceDelta decimal.Decimal
	Active     bool
}

// SelectedModifier is a resolved option copied onto a sale line
type SelectedModifier struct {
	OptionID   uuid.UUID       `json:"option_id"`
	Group      string          `json:"group"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// Selection is the outcome of validating chosen options against a product
type Selection struct {
	Modifiers  []SelectedModifier
	PriceDelta decimal.Decimal
}

// Labels returns "Group: Option" strings for display on tickets
func (s Selection) Labels() []string {
	labels := make([]string, len(s.Modifiers))
	for i, m := range s.Modifiers {
		labels[i] = m.Group + ": " + m.Name
	}
	return labels
}

func (g *ModifierGroup) validate() error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return shared.NewValidationError("Modifier group name cannot be empty")
	}
	if g.MinSelect < 0 || g.MaxSelect < 0 {
		return shared.NewValidationError("Modifier group selection bounds cannot be negative")
	}
	if g.MaxSelect > 0 && g.MinSelect > g.MaxSelect {
		return shared.NewValidationError("Modifier group min_select cannot exceed max_select")
	}
	if len(g.Options) == 0 {
		return shared.NewValidationError("Modifier group " + g.Name + " needs at least one option")
	}
	if g.MinSelect > len(g.Options) {
		return shared.NewValidationError("Modifier group " + g.Name + " requires more selections than it has options")
	}
	for i := range g.Options {
		opt := &g.Options[i]
		opt.Name = strings.TrimSpace(opt.Name)
		if opt.Name == "" {
			return shared.NewValidationError("Modifier option name cannot be empty")
		}
		if opt.PriceDelta.IsNegative() {
			return shared.NewValidationError("Modifier option price cannot be negative")
		}
		opt.PriceDelta = shared.RoundMoney(opt.PriceDelta)
	}
	return nil
}
