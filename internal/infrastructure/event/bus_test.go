package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "Mesa 3",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	h.handled = append(h.handled, e)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func startedBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := startedBus(t)
	created := newTestHandler("sale.created")
	closed := newTestHandler("sale.closed")
	bus.Subscribe(created)
	bus.Subscribe(closed)

	e := newTestEvent("sale.created")
	require.NoError(t, bus.Publish(context.Background(), e))

	require.Equal(t, 1, created.count())
	assert.Equal(t, e, created.handled[0])
	assert.Equal(t, 0, closed.count())
}

func TestInMemoryEventBus_CatchAllHandler(t *testing.T) {
	bus := startedBus(t)
	all := newTestHandler()
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("sale.created"), newTestEvent("period.closed")))

	assert.Equal(t, 2, all.count())
}

func TestInMemoryEventBus_FailingHandlersDoNotBlockOthers(t *testing.T) {
	bus := startedBus(t)
	failing := newTestHandler("kitchen.order.created")
	failing.err = errors.New("client gone")
	panicking := newTestHandler("kitchen.order.created")
	panicking.panics = true
	healthy := newTestHandler("kitchen.order.created")
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("kitchen.order.created"))

	require.NoError(t, err)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestInMemoryEventBus_StoppedBusDropsEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("sale.closed")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("sale.closed")))
	assert.Equal(t, 0, handler.count())

	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("sale.closed")))
	assert.Equal(t, 1, handler.count())

	require.NoError(t, bus.Stop(context.Background()))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("sale.closed")))
	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := startedBus(t)
	handler := newTestHandler("sale.created")
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("sale.created")))
	assert.Equal(t, 0, handler.count())
}
