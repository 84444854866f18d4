package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFilter(t *testing.T) {
	f := Filter{TopN: 500, OrderBy: "bogus"}.Normalize()
	assert.Equal(t, 100, f.TopN)
	assert.Equal(t, OrderByQuantity, f.OrderBy)
	assert.Equal(t, 10, Filter{}.Normalize().TopN)

	require.Error(t, Filter{}.Validate())
	now := time.Now()
	require.Error(t, Filter{From: now, To: now.Add(-time.Hour)}.Validate())
	require.NoError(t, Filter{From: now, To: now}.Validate())
}

func TestSalesSummary_Finalize(t *testing.T) {
	s := &SalesSummary{
		SalesCount: 4,
		Subtotal:   dec("200"),
		Total:      dec("230"),
		CostTotal:  dec("80"),
	}
	s.Finalize()
	assert.True(t, s.GrossProfit.Equal(dec("120")))
	assert.True(t, s.MarginPercent.Equal(dec("60")))
	assert.True(t, s.AverageTicket.Equal(dec("57.5")))
	assert.NotNil(t, s.ByPaymentMethod)

	empty := &SalesSummary{}
	empty.Finalize()
	assert.True(t, empty.AverageTicket.IsZero())
	assert.True(t, empty.MarginPercent.IsZero())
}

func TestFillHours(t *testing.T) {
	hours := FillHours([]HourlySales{{Hour: 13, SalesCount: 5, Total: dec("80")}, {Hour: 30}})
	require.Len(t, hours, 24)
	assert.Equal(t, int64(5), hours[13].SalesCount)
	assert.True(t, hours[12].Total.IsZero())
	assert.Equal(t, 23, hours[23].Hour)
}

func TestRankAndShare(t *testing.T) {
	ranked := RankProducts([]ProductRanking{
		{ProductName: "Hamburguesa", Subtotal: dec("100"), CostTotal: dec("40")},
		{ProductName: "Cola", Subtotal: dec("20"), CostTotal: dec("15")},
	})
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.True(t, ranked[0].MarginPercent.Equal(dec("60")))
	assert.True(t, ranked[1].GrossProfit.Equal(dec("5")))

	cats := ShareCategories([]CategorySales{
		{CategoryName: "Platos", Total: dec("75")},
		{Total: dec("25")},
	})
	assert.True(t, cats[0].SharePercent.Equal(dec("75")))
	assert.Equal(t, "Sin categoría", cats[1].CategoryName)
}

func TestProfitAndLoss_Finalize(t *testing.T) {
	p := &ProfitAndLoss{
		NetRevenue:  dec("1000"),
		CostOfGoods: dec("350"),
		PayrollPaid: dec("400"),
		Investments: dec("100"),
	}
	p.Finalize()
	assert.True(t, p.GrossProfit.Equal(dec("650")))
	assert.True(t, p.GrossMargin.Equal(dec("65")))
	assert.True(t, p.NetResult.Equal(dec("150")))
	assert.True(t, p.NetMargin.Equal(dec("15")))
}

func TestNewInventoryValuation(t *testing.T) {
	v := NewInventoryValuation([]ValuationLine{
		{Name: "Queso", Stock: dec("4"), MinStock: dec("1"), UnitCost: dec("6.125")},
		{Name: "Pan", Stock: dec("-2"), MinStock: dec("10"), UnitCost: dec("0.25")},
	})
	assert.True(t, v.Items[0].Value.Equal(dec("24.5")))
	assert.True(t, v.Items[1].Value.IsZero())
	assert.True(t, v.TotalValue.Equal(dec("24.5")))
	assert.Equal(t, 1, v.LowStockCount)

	assert.NotNil(t, NewInventoryValuation(nil).Items)
}
