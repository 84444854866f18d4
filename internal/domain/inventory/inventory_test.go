package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewItem(t *testing.T) {
	item, err := NewItem(" Carne molida ", UnitKilogram, dec("2"), dec("6.5"))
	require.NoError(t, err)
	assert.Equal(t, "Carne molida", item.Name)
	assert.True(t, item.Stock.IsZero())
	assert.True(t, item.IsLow())

	_, err = NewItem("Pan", Unit("box"), decimal.Zero, decimal.Zero)
	require.Error(t, err)
	_, err = NewItem("", UnitPiece, decimal.Zero, decimal.Zero)
	require.Error(t, err)
	_, err = NewItem("Pan", UnitPiece, dec("-1"), decimal.Zero)
	require.Error(t, err)
}

func TestItem_ReceiveWeightedAverage(t *testing.T) {
	item, err := NewItem("Queso", UnitKilogram, dec("1"), decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, item.Receive(dec("10"), dec("5")))
	assert.True(t, item.UnitCost.Equal(dec("5")))
	require.NoError(t, item.Receive(dec("10"), dec("7")))
	assert.True(t, item.Stock.Equal(dec("20")))
	assert.True(t, item.UnitCost.Equal(dec("6")))
	assert.True(t, item.Value().Equal(dec("120")))
	assert.False(t, item.IsLow())

	require.Error(t, item.Receive(decimal.Zero, dec("1")))
	require.Error(t, item.Receive(dec("1"), dec("-1")))
}

func TestItem_ConsumeRestoreAdjust(t *testing.T) {
	item, err := NewItem("Pan", UnitPiece, dec("5"), dec("0.25"))
	require.NoError(t, err)
	require.NoError(t, item.Receive(dec("3"), dec("0.25")))

	assert.False(t, item.Consume(dec("2")))
	assert.True(t, item.Consume(dec("2")), "kitchen may oversell ingredients")
	assert.True(t, item.Stock.Equal(dec("-1")))
	assert.True(t, item.Value().IsZero())

	item.Restore(dec("4"))
	assert.True(t, item.Stock.Equal(dec("3")))

	require.Error(t, item.Adjust(dec("-1"), ""))
	require.Error(t, item.Adjust(decimal.Zero, "count"))
	require.Error(t, item.Adjust(dec("-4"), "waste"))
	require.NoError(t, item.Adjust(dec("-1"), "waste"))
	assert.True(t, item.Stock.Equal(dec("2")))

	// purchase after negative stock takes the new cost
	item.Consume(dec("5"))
	require.NoError(t, item.Receive(dec("10"), dec("0.40")))
	assert.True(t, item.UnitCost.Equal(dec("0.4")))
}

func TestNewPurchase(t *testing.T) {
	p, err := NewPurchase(uuid.New(), dec("2.5"), dec("4.10"), " Mercado ", "F-001", time.Time{}, uuid.New())
	require.NoError(t, err)
	assert.True(t, p.Total.Equal(dec("10.25")))
	assert.Equal(t, "Mercado", p.Supplier)
	assert.False(t, p.PurchasedAt.IsZero())

	_, err = NewPurchase(uuid.Nil, dec("1"), dec("1"), "", "", time.Now(), uuid.New())
	require.Error(t, err)
	_, err = NewPurchase(uuid.New(), decimal.Zero, dec("1"), "", "", time.Now(), uuid.New())
	require.Error(t, err)
}

func TestRecipe(t *testing.T) {
	product := uuid.New()
	bread, meat := uuid.New(), uuid.New()

	r, err := NewRecipe(product, []RecipeLine{
		{InventoryItemID: bread, Quantity: dec("1")},
		{InventoryItemID: meat, Quantity: dec("0.15")},
	})
	require.NoError(t, err)
	assert.Len(t, r.ItemIDs(), 2)
	assert.Equal(t, product, r.Lines[0].ProductID)

	cost := r.Cost(map[uuid.UUID]decimal.Decimal{bread: dec("0.25"), meat: dec("8")})
	assert.True(t, cost.Equal(dec("1.45")))

	used := Consumption(r.Lines, map[uuid.UUID]decimal.Decimal{product: dec("3"), uuid.New(): dec("9")})
	assert.True(t, used[bread].Equal(dec("3")))
	assert.True(t, used[meat].Equal(dec("0.45")))

	_, err = NewRecipe(product, []RecipeLine{{InventoryItemID: bread, Quantity: dec("1")}, {InventoryItemID: bread, Quantity: dec("2")}})
	require.Error(t, err)
	_, err = NewRecipe(product, []RecipeLine{{InventoryItemID: bread, Quantity: decimal.Zero}})
	require.Error(t, err)

	empty, err := NewRecipe(product, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Lines)
}
