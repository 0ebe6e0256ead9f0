package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/pos-restaurante/internal/application/dto"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() orders.Event {
	return orders.Event{
		ID:         "ev-1",
		Type:       orders.EventOrderCreated,
		OccurredAt: time.Date(2024, 7, 2, 12, 0, 0, 0, time.UTC),
		Order: dto.OrderResponse{
			ID:        42,
			OrderType: "takeout",
			Status:    "pending",
			Total:     decimal.NewFromInt(50),
		},
	}
}

func TestPublish_ClaveYPayload(t *testing.T) {
	w := &fakeWriter{}
	n := NewKafkaNotifier(w)

	require.NoError(t, n.Publish(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, orders.EventOrderCreated, headerCarrier{msg: &msg}.Get("event_type"))

	var got orders.Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "ev-1", got.ID)
	assert.Equal(t, int64(42), got.Order.ID)
	assert.True(t, got.Order.Total.Equal(decimal.NewFromInt(50)))
}

func TestPublish_PropagaTraza(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(prev)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	w := &fakeWriter{}
	require.NoError(t, NewKafkaNotifier(w).Publish(ctx, sampleEvent()))

	msg := w.msgs[0]
	assert.Contains(t, headerCarrier{msg: &msg}.Get("traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")
}

func TestPublish_ErrorDelWriter(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	err := NewKafkaNotifier(w).Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order.created")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewKafkaNotifier(w).Close())
	assert.True(t, w.closed)
}

func TestHeaderCarrier_SetSobrescribe(t *testing.T) {
	msg := kafka.Message{}
	c := headerCarrier{msg: &msg}
	c.Set("a", "1")
	c.Set("a", "2")
	c.Set("b", "3")
	assert.Equal(t, "2", c.Get("a"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"k1:9092"}, "pos.orders")
	assert.Equal(t, "pos.orders", w.Topic)
	assert.Equal(t, "k1:9092", w.Addr.String())
}
