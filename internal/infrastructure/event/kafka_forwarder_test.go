package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/restopos/backend/internal/domain/sales"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaForwarder_Handle(t *testing.T) {
	w := &recordingWriter{}
	f := newKafkaForwarder(w, zap.NewNop())
	e := newTestEvent(sales.EventTypeSaleClosed)

	require.NoError(t, f.Handle(context.Background(), e))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, e.AggregateID().String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, sales.EventTypeSaleClosed, string(msg.Headers[0].Value))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, e.EventID().String(), envelope.ID)
	assert.Equal(t, "TestAggregate", envelope.AggregateType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "Mesa 3", payload["data"])

	require.NoError(t, f.Close())
	assert.True(t, w.closed)
}

func TestKafkaForwarder_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker unavailable")}
	f := newKafkaForwarder(w, zap.NewNop())

	err := f.Handle(context.Background(), newTestEvent(sales.EventTypeSaleCreated))
	assert.EqualError(t, err, "broker unavailable")
}

func TestKafkaForwarder_EventTypes(t *testing.T) {
	f := newKafkaForwarder(&recordingWriter{}, zap.NewNop())
	assert.Contains(t, f.EventTypes(), sales.EventTypeSaleReversed)
	assert.Contains(t, f.EventTypes(), "kitchen.order.created")
}
