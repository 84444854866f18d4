package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(ProductInput{
		CategoryID:    uuid.New(),
		Code:          "bur-01",
		Name:          "Hamburguesa clásica",
		Price:         decimal.RequireFromString("11.50"),
		Cost:          decimal.RequireFromString("4.00"),
		TaxRate:       decimal.NewFromInt(15),
		SendToKitchen: true,
	})
	require.NoError(t, err)
	return p
}

func withModifiers(t *testing.T, p *Product) {
	t.Helper()
	err := p.SetModifierGroups([]ModifierGroup{
		{
			Name:      "Término",
			MinSelect: 1,
			MaxSelect: 1,
			Options: []ModifierOption{
				{Name: "Medio", Active: true},
				{Name: "Bien cocido", Active: true},
			},
		},
		{
			Name: "Extras",
			Options: []ModifierOption{
				{Name: "Queso", PriceDelta: decimal.RequireFromString("1.00"), Active: true},
				{Name: "Tocino", PriceDelta: decimal.RequireFromString("1.50"), Active: true},
				{Name: "Jalapeño", PriceDelta: decimal.RequireFromString("0.50"), Active: false},
			},
		},
	})
	require.NoError(t, err)
}

func TestNewProduct(t *testing.T) {
	p := newTestProduct(t)
	assert.Equal(t, "BUR-01", p.Code)
	assert.True(t, p.Active)
	assert.True(t, p.NetPrice().Equal(decimal.NewFromInt(10)))
	assert.True(t, p.Margin().Equal(decimal.NewFromInt(60)))
}

func TestNewProduct_Validation(t *testing.T) {
	base := ProductInput{
		CategoryID: uuid.New(),
		Code:       "X1",
		Name:       "Agua",
		Price:      decimal.NewFromInt(1),
		TaxRate:    decimal.NewFromInt(15),
	}

	tests := []struct {
		name   string
		mutate func(in *ProductInput)
	}{
		{"missing category", func(in *ProductInput) { in.CategoryID = uuid.Nil }},
		{"empty code", func(in *ProductInput) { in.Code = " " }},
		{"empty name", func(in *ProductInput) { in.Name = "" }},
		{"negative price", func(in *ProductInput) { in.Price = decimal.NewFromInt(-1) }},
		{"negative cost", func(in *ProductInput) { in.Cost = decimal.NewFromInt(-1) }},
		{"tax too high", func(in *ProductInput) { in.TaxRate = decimal.NewFromInt(101) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := NewProduct(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.NewValidationError(""))
		})
	}
}

func TestProduct_ResolveModifiers(t *testing.T) {
	p := newTestProduct(t)
	withModifiers(t, p)
	term := p.ModifierGroups[0].Options
	extras := p.ModifierGroups[1].Options

	t.Run("valid selection", func(t *testing.T) {
		sel, err := p.ResolveModifiers([]uuid.UUID{term[0].ID, extras[0].ID, extras[1].ID})
		require.NoError(t, err)
		assert.Len(t, sel.Modifiers, 3)
		assert.True(t, sel.PriceDelta.Equal(decimal.RequireFromString("2.50")))
		assert.Equal(t, []string{"Término: Medio", "Extras: Queso", "Extras: Tocino"}, sel.Labels())
	})

	t.Run("missing required group", func(t *testing.T) {
		_, err := p.ResolveModifiers([]uuid.UUID{extras[0].ID})
		require.Error(t, err)
	})

	t.Run("too many in single choice group", func(t *testing.T) {
		_, err := p.ResolveModifiers([]uuid.UUID{term[0].ID, term[1].ID})
		require.Error(t, err)
	})

	t.Run("inactive option", func(t *testing.T) {
		_, err := p.ResolveModifiers([]uuid.UUID{term[0].ID, extras[2].ID})
		require.Error(t, err)
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := p.ResolveModifiers([]uuid.UUID{term[0].ID, uuid.New()})
		require.Error(t, err)
	})

	t.Run("duplicate option", func(t *testing.T) {
		_, err := p.ResolveModifiers([]uuid.UUID{term[0].ID, term[0].ID})
		require.Error(t, err)
	})
}

func TestProduct_SetModifierGroups_Validation(t *testing.T) {
	p := newTestProduct(t)

	err := p.SetModifierGroups([]ModifierGroup{{Name: "Salsas", MinSelect: 2, MaxSelect: 1, Options: []ModifierOption{{Name: "BBQ"}}}})
	require.Error(t, err)

	err = p.SetModifierGroups([]ModifierGroup{{Name: "Salsas"}})
	require.Error(t, err)

	err = p.SetModifierGroups([]ModifierGroup{
		{Name: "Salsas", Options: []ModifierOption{{Name: "BBQ"}}},
		{Name: "SALSAS", Options: []ModifierOption{{Name: "Mayo"}}},
	})
	require.Error(t, err)

	err = p.SetModifierGroups(nil)
	require.NoError(t, err)
	assert.Empty(t, p.ModifierGroups)
}

func TestProduct_Stock(t *testing.T) {
	p := newTestProduct(t)

	// untracked products ignore stock movements
	require.NoError(t, p.DeductStock(decimal.NewFromInt(5)))
	assert.True(t, p.Stock.IsZero())
	require.Error(t, p.AdjustStock(decimal.NewFromInt(1)))

	p.TrackStock = true
	require.NoError(t, p.AdjustStock(decimal.NewFromInt(3)))
	require.NoError(t, p.DeductStock(decimal.NewFromInt(2)))
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(1)))

	err := p.DeductStock(decimal.NewFromInt(2))
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	p.RestoreStock(decimal.NewFromInt(2))
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(3)))

	require.Error(t, p.AdjustStock(decimal.NewFromInt(-4)))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("  BEBIDAS Frías "), NameKey("bebidas frías"))
	assert.Equal(t, "ñandú", NameKey("ÑANDÚ"))
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(" Bebidas ", "", 2)
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", c.Name)
	assert.True(t, c.Active)

	_, err = NewCategory("", "", 0)
	require.Error(t, err)
}
