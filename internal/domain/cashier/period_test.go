package cashier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOpenPeriod(t *testing.T) {
	p, err := OpenPeriod(uuid.New(), dec("50"), " turno mañana ")
	require.NoError(t, err)
	assert.True(t, p.IsOpen())
	assert.True(t, p.ExpectedCash.Equal(dec("50")))
	assert.Equal(t, "turno mañana", p.Notes)
	require.Len(t, p.Events(), 1)
	assert.Equal(t, EventTypePeriodOpened, p.Events()[0].EventType())

	_, err = OpenPeriod(uuid.New(), dec("-1"), "")
	require.Error(t, err)
	_, err = OpenPeriod(uuid.Nil, dec("1"), "")
	require.Error(t, err)
}

func TestSalesPeriod_CloseReconciles(t *testing.T) {
	p, err := OpenPeriod(uuid.New(), dec("50"), "")
	require.NoError(t, err)

	totals := Totals{
		CashSales:     dec("230.50"),
		TransferSales: dec("40"),
		CardSales:     dec("12.25"),
		Withdrawals:   dec("20"),
	}
	assert.True(t, totals.TotalSales().Equal(dec("282.75")))

	require.NoError(t, p.Close(uuid.New(), dec("258"), totals, "cuadre"))
	assert.Equal(t, PeriodClosed, p.Status)
	assert.True(t, p.ExpectedCash.Equal(dec("260.50")))
	assert.True(t, p.Difference.Equal(dec("-2.50")))
	assert.NotNil(t, p.ClosedAt)
	assert.Equal(t, "cuadre", p.Notes)

	err = p.Close(uuid.New(), dec("258"), totals, "")
	require.Error(t, err)

	// closed periods keep their figures
	p.Apply(Totals{CashSales: dec("999")})
	assert.True(t, p.CashSales.Equal(dec("230.50")))
}

func TestSalesPeriod_Withdraw(t *testing.T) {
	p, err := OpenPeriod(uuid.New(), dec("20"), "")
	require.NoError(t, err)
	totals := Totals{CashSales: dec("30"), Withdrawals: dec("5")}

	w, err := p.Withdraw(dec("45"), "proveedor", uuid.New(), totals)
	require.NoError(t, err)
	assert.Equal(t, p.ID, w.PeriodID)
	assert.True(t, p.Withdrawals.Equal(dec("50")))
	assert.True(t, p.ExpectedCash.Equal(dec("0")))

	_, err = p.Withdraw(dec("45.01"), "proveedor", uuid.New(), totals)
	require.Error(t, err)
	_, err = p.Withdraw(dec("0"), "proveedor", uuid.New(), totals)
	require.Error(t, err)
	_, err = p.Withdraw(dec("1"), " ", uuid.New(), totals)
	require.Error(t, err)

	require.NoError(t, p.Close(uuid.New(), dec("0"), totals, ""))
	_, err = p.Withdraw(dec("1"), "x", uuid.New(), totals)
	require.Error(t, err)
}
