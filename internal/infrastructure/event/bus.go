// Package event carries domain events from the services that raise them to
// in-process handlers (kitchen stream, metrics) and, optionally, to Kafka.
package event

import (
	"context"
	"sync/atomic"

	"github.com/restopos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus dispatches events synchronously to the handlers subscribed
// to their type. Delivery is best effort: handler failures are logged and
// events published while the bus is stopped are dropped.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
	inFlight atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish hands each event to its handlers. It never fails: committed
// changes must not be reported as errors because a listener misbehaved.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.running.Load() {
		for _, e := range events {
			b.logger.Debug("Event bus stopped, dropping event", zap.String("event_type", e.EventType()))
		}
		return nil
	}

	b.inFlight.Add(1)
	defer b.inFlight.Add(-1)

	for _, e := range events {
		for _, handler := range b.registry.Handlers(e.EventType()) {
			if err := b.dispatch(ctx, handler, e); err != nil {
				b.logger.Error("Event handler failed",
					zap.String("event_type", e.EventType()),
					zap.String("event_id", e.EventID().String()),
					zap.String("aggregate_id", e.AggregateID().String()),
					zap.Error(err))
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit types the handler's own
// EventTypes are used; an empty list subscribes it to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start enables delivery
func (b *InMemoryEventBus) Start(_ context.Context) error {
	b.running.Store(true)
	b.logger.Info("Event bus started", zap.Int("handlers", b.registry.Len()))
	return nil
}

// Stop disables delivery. Publishes already running complete on their own;
// the number still running is logged.
func (b *InMemoryEventBus) Stop(_ context.Context) error {
	b.running.Store(false)
	b.logger.Info("Event bus stopped", zap.Int64("in_flight", b.inFlight.Load()))
	return nil
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, e shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				zap.String("event_type", e.EventType()),
				zap.Any("panic", r))
		}
	}()
	return handler.Handle(ctx, e)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
