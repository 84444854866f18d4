package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/restopos/backend/internal/domain/cashier"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/sales"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/config"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ForwardedEventTypes are the events published to Kafka
var ForwardedEventTypes = []string{
	sales.EventTypeSaleCreated,
	sales.EventTypeSaleClosed,
	sales.EventTypeSaleReversed,
	kitchen.EventTypeOrderCreated,
	kitchen.EventTypeOrderStatusChanged,
	cashier.EventTypePeriodOpened,
	cashier.EventTypePeriodClosed,
}

// Envelope is the Kafka message value: event metadata plus the event as JSON
type Envelope struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a domain event
func NewEnvelope(e shared.DomainEvent) (*Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", e.EventType(), err)
	}
	return &Envelope{
		ID:            e.EventID().String(),
		Type:          e.EventType(),
		AggregateType: e.AggregateType(),
		AggregateID:   e.AggregateID().String(),
		OccurredAt:    e.OccurredAt(),
		Payload:       payload,
	}, nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaForwarder publishes domain events to a Kafka topic keyed by aggregate
// ID, so the events of one sale stay ordered within a partition.
type KafkaForwarder struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaForwarder creates an asynchronous writer for the configured topic.
// Write failures are reported through the completion callback and logged.
func NewKafkaForwarder(cfg config.EventConfig, logger *zap.Logger) *KafkaForwarder {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	w.Completion = func(messages []kafkago.Message, err error) {
		if err != nil {
			logger.Warn("Kafka event delivery failed",
				zap.String("topic", cfg.KafkaTopic),
				zap.Int("messages", len(messages)),
				zap.Error(err))
		}
	}
	return newKafkaForwarder(w, logger)
}

func newKafkaForwarder(w messageWriter, logger *zap.Logger) *KafkaForwarder {
	return &KafkaForwarder{writer: w, logger: logger}
}

// Handle forwards one event
func (f *KafkaForwarder) Handle(ctx context.Context, e shared.DomainEvent) error {
	envelope, err := NewEnvelope(e)
	if err != nil {
		return err
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return f.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(envelope.AggregateID),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(envelope.Type)},
		},
		Time: envelope.OccurredAt,
	})
}

// EventTypes returns the forwarded event types
func (f *KafkaForwarder) EventTypes() []string {
	return ForwardedEventTypes
}

// Close flushes pending messages
func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*KafkaForwarder)(nil)
