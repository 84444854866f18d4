package kitchen

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of kitchen.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, order *kitchen.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, order *kitchen.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*kitchen.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Order), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter kitchen.Filter) ([]*kitchen.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*kitchen.Order), args.Error(1)
}

func (m *MockRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]*kitchen.Order, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).([]*kitchen.Order), args.Error(1)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newTestOrder(t *testing.T) *kitchen.Order {
	t.Helper()
	o, err := kitchen.NewOrder(uuid.New(), "V-20260110-0001", "Mesa 2", "dine_in", "", []kitchen.ItemInput{
		{SaleItemID: uuid.New(), ProductName: "Seco de pollo", Quantity: decimal.NewFromInt(1)},
	})
	require.NoError(t, err)
	o.PullEvents()
	return o
}

func TestKitchenService_ListDefaultsToActive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewKitchenService(repo, zap.NewNop())
	repo.On("FindAll", ctx, kitchen.Filter{Statuses: kitchen.ActiveStatuses(), Limit: defaultListLimit}).
		Return([]*kitchen.Order{newTestOrder(t)}, nil)

	orders, err := svc.List(ctx, OrderListFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "pending", orders[0].Status)
	assert.Equal(t, "Mesa 2", orders[0].TableName)
}

func TestKitchenService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advance", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewKitchenService(repo, zap.NewNop())
		pub := &recordingPublisher{}
		svc.SetEventPublisher(pub)
		order := newTestOrder(t)
		repo.On("FindByID", ctx, order.ID).Return(order, nil)
		repo.On("Update", ctx, order).Return(nil)

		resp, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "preparing"})
		require.NoError(t, err)
		assert.Equal(t, "preparing", resp.Status)
		assert.NotNil(t, resp.StartedAt)
		require.Len(t, pub.events, 1)
		assert.Equal(t, kitchen.EventTypeOrderStatusChanged, pub.events[0].EventType())
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewKitchenService(repo, zap.NewNop())
		order := newTestOrder(t)
		repo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "delivered"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidState, de.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewKitchenService(repo, zap.NewNop())
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.UpdateStatus(ctx, id, UpdateStatusRequest{Status: "ready"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
