package main

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoMenu_CodesUniqueAndPricesValid(t *testing.T) {
	codes := make(map[string]bool)
	for _, c := range demoMenu {
		require.NotEmpty(t, c.Products, c.Name)
		for _, p := range c.Products {
			assert.False(t, codes[p.Code], "duplicate code %s", p.Code)
			codes[p.Code] = true

			req := p.request(uuid.New())
			assert.True(t, req.Price.IsPositive(), p.Code)
			assert.True(t, req.Cost.LessThan(req.Price), "%s costs more than it sells for", p.Code)
		}
	}
}

func TestFakeEmployee(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 20; i++ {
		e := fakeEmployee(f)
		assert.Len(t, e.IDNumber, 10)
		assert.NotEmpty(t, e.FullName)
		assert.Contains(t, positions, e.Position)
		assert.True(t, e.BaseSalary.GreaterThanOrEqual(decimal.NewFromInt(460)))
		assert.True(t, e.BaseSalary.LessThanOrEqual(decimal.NewFromInt(900)))
		assert.False(t, e.HireDate.IsZero())
	}
}

func TestFakeSale(t *testing.T) {
	f := gofakeit.New(7)
	products := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	for i := 0; i < 50; i++ {
		sale := fakeSale(f, products)
		assert.Contains(t, []string{"takeaway", "delivery"}, sale.OrderType)
		assert.Nil(t, sale.TableID)
		require.NotNil(t, sale.Payment)
		assert.Contains(t, paymentMethods, sale.Payment.Method)
		require.NotEmpty(t, sale.Items)
		assert.LessOrEqual(t, len(sale.Items), 4)
		for _, item := range sale.Items {
			assert.Contains(t, products, item.ProductID)
			assert.True(t, item.Quantity.IsPositive())
		}
	}
}

func TestFakeSale_SameSeedSameSales(t *testing.T) {
	products := []uuid.UUID{uuid.New(), uuid.New()}
	a := fakeSale(gofakeit.New(99), products)
	b := fakeSale(gofakeit.New(99), products)
	assert.Equal(t, a, b)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	admin, _, err := cmd.Find([]string{"admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Name())
	assert.NotNil(t, admin.Flags().Lookup("password"))

	demo, _, err := cmd.Find([]string{"demo"})
	require.NoError(t, err)
	for _, flag := range []string{"operator", "employees", "sales", "seed"} {
		assert.NotNil(t, demo.Flags().Lookup(flag), flag)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}
