package cashier

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPeriodRepository is a mock implementation of cashier.PeriodRepository
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) Create(ctx context.Context, period *cashier.SalesPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *MockPeriodRepository) Update(ctx context.Context, period *cashier.SalesPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *MockPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashier.SalesPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashier.SalesPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpen(ctx context.Context) (*cashier.SalesPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashier.SalesPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpenForUpdate(ctx context.Context) (*cashier.SalesPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cashier.SalesPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindAll(ctx context.Context, filter cashier.PeriodFilter) ([]*cashier.SalesPeriod, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*cashier.SalesPeriod), args.Get(1).(int64), args.Error(2)
}

func (m *MockPeriodRepository) Totals(ctx context.Context, periodID uuid.UUID) (cashier.Totals, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).(cashier.Totals), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of cashier.WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, w *cashier.Withdrawal) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWithdrawalRepository) FindByPeriodID(ctx context.Context, periodID uuid.UUID) ([]*cashier.Withdrawal, error) {
	args := m.Called(ctx, periodID)
	return args.Get(0).([]*cashier.Withdrawal), args.Error(1)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newPeriodService(periods *MockPeriodRepository, withdrawals *MockWithdrawalRepository) (*PeriodService, *recordingPublisher) {
	svc := NewPeriodService(periods, withdrawals, NewNoOpTransactionScope(periods, withdrawals), zap.NewNop())
	pub := &recordingPublisher{}
	svc.SetEventPublisher(pub)
	return svc, pub
}

func openPeriod(t *testing.T, amount string) *cashier.SalesPeriod {
	t.Helper()
	p, err := cashier.OpenPeriod(uuid.New(), decimal.RequireFromString(amount), "")
	require.NoError(t, err)
	p.PullEvents()
	return p
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestPeriodService_Open(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
		svc, pub := newPeriodService(periods, withdrawals)
		periods.On("FindOpenForUpdate", ctx).Return(nil, shared.ErrNoOpenPeriod)
		periods.On("Create", ctx, mock.AnythingOfType("*cashier.SalesPeriod")).Return(nil)

		resp, err := svc.Open(ctx, userID, OpenPeriodRequest{OpeningAmount: decimal.NewFromInt(50)})
		require.NoError(t, err)
		assert.Equal(t, "open", resp.Status)
		assert.True(t, decimal.NewFromInt(50).Equal(resp.ExpectedCash))
		require.Len(t, pub.events, 1)
		assert.Equal(t, cashier.EventTypePeriodOpened, pub.events[0].EventType())
	})

	t.Run("already open", func(t *testing.T) {
		periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
		svc, _ := newPeriodService(periods, withdrawals)
		periods.On("FindOpenForUpdate", ctx).Return(openPeriod(t, "10"), nil)

		_, err := svc.Open(ctx, userID, OpenPeriodRequest{OpeningAmount: decimal.NewFromInt(50)})
		assert.Equal(t, shared.CodeConflict, domainCode(t, err))
		periods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPeriodService_Withdraw(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	totals := cashier.Totals{
		CashSales:     decimal.NewFromInt(80),
		TransferSales: decimal.NewFromInt(40),
		Withdrawals:   decimal.NewFromInt(20),
	}

	t.Run("within available cash", func(t *testing.T) {
		periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
		svc, _ := newPeriodService(periods, withdrawals)
		period := openPeriod(t, "50")
		periods.On("FindOpenForUpdate", ctx).Return(period, nil)
		periods.On("Totals", ctx, period.ID).Return(totals, nil)
		withdrawals.On("Create", ctx, mock.AnythingOfType("*cashier.Withdrawal")).Return(nil)
		periods.On("Update", ctx, period).Return(nil)

		// available = 50 + 80 - 20 = 110
		resp, err := svc.Withdraw(ctx, userID, WithdrawRequest{Amount: decimal.NewFromInt(110), Reason: "Pago proveedor"})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(110).Equal(resp.Amount))
		assert.True(t, period.ExpectedCash.IsZero())
	})

	t.Run("above available cash", func(t *testing.T) {
		periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
		svc, _ := newPeriodService(periods, withdrawals)
		period := openPeriod(t, "50")
		periods.On("FindOpenForUpdate", ctx).Return(period, nil)
		periods.On("Totals", ctx, period.ID).Return(totals, nil)

		_, err := svc.Withdraw(ctx, userID, WithdrawRequest{Amount: decimal.RequireFromString("110.01"), Reason: "x"})
		assert.Equal(t, shared.CodeValidation, domainCode(t, err))
		withdrawals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("no open period", func(t *testing.T) {
		periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
		svc, _ := newPeriodService(periods, withdrawals)
		periods.On("FindOpenForUpdate", ctx).Return(nil, shared.ErrNoOpenPeriod)

		_, err := svc.Withdraw(ctx, userID, WithdrawRequest{Amount: decimal.NewFromInt(1), Reason: "x"})
		assert.Equal(t, shared.CodeNoOpenPeriod, domainCode(t, err))
	})
}

func TestPeriodService_Close(t *testing.T) {
	ctx := context.Background()
	periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
	svc, pub := newPeriodService(periods, withdrawals)
	period := openPeriod(t, "50")
	totals := cashier.Totals{
		CashSales:   decimal.RequireFromString("120.40"),
		CardSales:   decimal.RequireFromString("35.00"),
		Withdrawals: decimal.NewFromInt(30),
		SalesCount:  9,
	}
	periods.On("FindOpenForUpdate", ctx).Return(period, nil)
	periods.On("Totals", ctx, period.ID).Return(totals, nil)
	periods.On("Update", ctx, period).Return(nil)
	withdrawals.On("FindByPeriodID", ctx, period.ID).Return([]*cashier.Withdrawal{}, nil)

	resp, err := svc.Close(ctx, uuid.New(), ClosePeriodRequest{CountedCash: decimal.NewFromInt(140)})
	require.NoError(t, err)
	assert.Equal(t, "closed", resp.Status)
	// expected = 50 + 120.40 - 30
	assert.True(t, decimal.RequireFromString("140.40").Equal(resp.ExpectedCash))
	assert.True(t, decimal.RequireFromString("-0.40").Equal(resp.Difference))
	assert.True(t, decimal.RequireFromString("155.40").Equal(resp.TotalSales))
	assert.Equal(t, int64(9), resp.SalesCount)
	require.Len(t, pub.events, 1)
	assert.Equal(t, cashier.EventTypePeriodClosed, pub.events[0].EventType())
}

func TestPeriodService_CurrentAppliesLiveTotals(t *testing.T) {
	ctx := context.Background()
	periods, withdrawals := new(MockPeriodRepository), new(MockWithdrawalRepository)
	svc, _ := newPeriodService(periods, withdrawals)
	period := openPeriod(t, "20")
	periods.On("FindOpen", ctx).Return(period, nil)
	periods.On("Totals", ctx, period.ID).Return(cashier.Totals{CashSales: decimal.NewFromInt(15), SalesCount: 2}, nil)
	withdrawals.On("FindByPeriodID", ctx, period.ID).Return([]*cashier.Withdrawal{}, nil)

	resp, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(35).Equal(resp.ExpectedCash))
	assert.Equal(t, int64(2), resp.SalesCount)
}
