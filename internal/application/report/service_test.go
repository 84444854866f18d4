package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/report"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesSummary(ctx context.Context, filter report.Filter) (*report.SalesSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SalesSummary), args.Error(1)
}

func (m *MockReportRepository) DailySales(ctx context.Context, filter report.Filter) ([]report.DailySales, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.DailySales), args.Error(1)
}

func (m *MockReportRepository) HourlySales(ctx context.Context, filter report.Filter) ([]report.HourlySales, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.HourlySales), args.Error(1)
}

func (m *MockReportRepository) ProductRanking(ctx context.Context, filter report.Filter) ([]report.ProductRanking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.ProductRanking), args.Error(1)
}

func (m *MockReportRepository) CategorySales(ctx context.Context, filter report.Filter) ([]report.CategorySales, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.CategorySales), args.Error(1)
}

func (m *MockReportRepository) TaxBreakdown(ctx context.Context, filter report.Filter) ([]report.TaxLine, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.TaxLine), args.Error(1)
}

func (m *MockReportRepository) ProfitAndLoss(ctx context.Context, filter report.Filter) (*report.ProfitAndLoss, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.ProfitAndLoss), args.Error(1)
}

func (m *MockReportRepository) InventoryValuation(ctx context.Context) (*report.InventoryValuation, error) {
	args := m.Called(ctx)
	return args.Get(0).(*report.InventoryValuation), args.Error(1)
}

type mockPeriodRepo struct {
	cashier.PeriodRepository
	mock.Mock
}

func (m *mockPeriodRepo) FindByID(ctx context.Context, id uuid.UUID) (*cashier.SalesPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashier.SalesPeriod), args.Error(1)
}

func (m *mockPeriodRepo) Totals(ctx context.Context, periodID uuid.UUID) (cashier.Totals, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(cashier.Totals), args.Error(1)
}

type mockWithdrawalRepo struct {
	cashier.WithdrawalRepository
	mock.Mock
}

func (m *mockWithdrawalRepo) FindByPeriodID(ctx context.Context, periodID uuid.UUID) ([]*cashier.Withdrawal, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).([]*cashier.Withdrawal), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService() (*ReportService, *MockReportRepository, *mockPeriodRepo, *mockWithdrawalRepo) {
	repo := new(MockReportRepository)
	periods := new(mockPeriodRepo)
	withdrawals := new(mockWithdrawalRepo)
	return NewReportService(repo, periods, withdrawals, zap.NewNop()), repo, periods, withdrawals
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestReportService_RangeCoversWholeDays(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.On("SalesSummary", ctx, mock.MatchedBy(func(f report.Filter) bool {
		return f.From.Equal(day("2026-01-01")) &&
			f.To.Equal(day("2026-01-02").Add(-time.Nanosecond)) &&
			f.TopN == 10 && f.OrderBy == report.OrderByQuantity
	})).Return(&report.SalesSummary{SalesCount: 3}, nil)

	summary, err := svc.Summary(ctx, RangeRequest{From: day("2026-01-01"), To: day("2026-01-01")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.SalesCount)
	repo.AssertExpectations(t)
}

func TestReportService_RejectsInvertedRange(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.Daily(context.Background(), RangeRequest{From: day("2026-02-10"), To: day("2026-02-01")})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
	repo.AssertNotCalled(t, "DailySales", mock.Anything, mock.Anything)
}

func TestReportService_HourlyIsZeroFilled(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	repo.On("HourlySales", ctx, mock.Anything).
		Return([]report.HourlySales{{Hour: 20, SalesCount: 7, Total: dec("140")}}, nil)

	hours, err := svc.Hourly(ctx, RangeRequest{From: day("2026-03-01"), To: day("2026-03-31")})
	require.NoError(t, err)
	require.Len(t, hours, 24)
	assert.Equal(t, int64(7), hours[20].SalesCount)
	assert.True(t, hours[0].Total.IsZero())
}

func TestReportService_ProductsRankedByAmount(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	repo.On("ProductRanking", ctx, mock.MatchedBy(func(f report.Filter) bool {
		return f.TopN == 5 && f.OrderBy == report.OrderByAmount
	})).Return([]report.ProductRanking{
		{ProductName: "Encebollado", Subtotal: dec("90"), CostTotal: dec("30")},
		{ProductName: "Jugo", Subtotal: dec("12"), CostTotal: dec("4")},
	}, nil)

	rows, err := svc.Products(ctx, RangeRequest{
		From: day("2026-03-01"), To: day("2026-03-07"), TopN: 5, OrderBy: report.OrderByAmount,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.True(t, rows[0].GrossProfit.Equal(dec("60")))
}

func TestReportService_EmptyRowsAreNotNil(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()
	req := RangeRequest{From: day("2026-03-01"), To: day("2026-03-01")}
	repo.On("CategorySales", ctx, mock.Anything).Return([]report.CategorySales(nil), nil)
	repo.On("TaxBreakdown", ctx, mock.Anything).Return([]report.TaxLine(nil), nil)

	cats, err := svc.Categories(ctx, req)
	require.NoError(t, err)
	assert.NotNil(t, cats)
	taxes, err := svc.Taxes(ctx, req)
	require.NoError(t, err)
	assert.NotNil(t, taxes)
}

func TestReportService_PeriodOpenUsesLiveTotals(t *testing.T) {
	svc, repo, periods, withdrawals := newTestService()
	ctx := context.Background()
	now := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	period, err := cashier.OpenPeriod(uuid.New(), dec("50"), "")
	require.NoError(t, err)
	periods.On("FindByID", ctx, period.ID).Return(period, nil)
	periods.On("Totals", ctx, period.ID).Return(cashier.Totals{
		CashSales:   dec("120"),
		CardSales:   dec("30"),
		Withdrawals: dec("20"),
		SalesCount:  6,
	}, nil)
	withdrawals.On("FindByPeriodID", ctx, period.ID).Return([]*cashier.Withdrawal{
		{ID: uuid.New(), PeriodID: period.ID, Amount: dec("20"), Reason: "Hielo"},
	}, nil)

	scoped := mock.MatchedBy(func(f report.Filter) bool {
		return f.PeriodID != nil && *f.PeriodID == period.ID && f.To.Equal(now)
	})
	repo.On("SalesSummary", ctx, scoped).Return(&report.SalesSummary{SalesCount: 6, Total: dec("150")}, nil)
	repo.On("TaxBreakdown", ctx, scoped).Return([]report.TaxLine{{TaxRate: dec("15"), Total: dec("150")}}, nil)
	repo.On("ProductRanking", ctx, scoped).Return([]report.ProductRanking(nil), nil)

	out, err := svc.Period(ctx, period.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", out.Status)
	assert.True(t, out.ExpectedCash.Equal(dec("150")))
	assert.True(t, out.CashSales.Equal(dec("120")))
	assert.Equal(t, int64(6), out.Summary.SalesCount)
	require.Len(t, out.WithdrawalLog, 1)
	assert.Equal(t, "Hielo", out.WithdrawalLog[0].Reason)
	assert.NotNil(t, out.Products)
	repo.AssertExpectations(t)
}

func TestReportService_PeriodNotFound(t *testing.T) {
	svc, _, periods, _ := newTestService()
	ctx := context.Background()
	id := uuid.New()
	periods.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := svc.Period(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
