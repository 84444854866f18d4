package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository_PeriodSummaryCountsCancelledOrders(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	periodID := uuid.New()
	opened := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	filter := report.Filter{From: opened, To: opened.Add(10 * time.Hour), PeriodID: &periodID}

	mock.ExpectQuery(`COUNT\(\*\) as sales_count`).
		WillReturnRows(sqlmock.NewRows([]string{
			"sales_count", "subtotal", "tax_amount", "discount_amount", "total", "cost_total",
		}).AddRow(int64(3), "30.00", "4.50", "0.00", "34.50", "12.00"))
	mock.ExpectQuery(`GROUP BY s.payment_method`).
		WillReturnRows(sqlmock.NewRows([]string{"method", "sales_count", "total"}).
			AddRow("cash", int64(3), "34.50"))
	mock.ExpectQuery(`\(s.status = \$\d+ OR s.period_id = \$\d+\)`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("cancelled", int64(2)).
			AddRow("voided", int64(1)))

	summary, err := NewGormReportRepository(db.DB).SalesSummary(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.SalesCount)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("34.50")))
	assert.Equal(t, int64(2), summary.CancelledCount)
	assert.Equal(t, int64(1), summary.VoidedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
