// Package messaging publica los eventos de órdenes en Kafka para las pantallas de cocina y caja.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/pos-restaurante/internal/application/orders"
)

// MessageWriter subconjunto de *kafka.Writer usado por el notificador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier implementa orders.Notifier. Clave = id de orden, así los eventos de una misma
// orden caen en la misma partición y conservan su orden.
type KafkaNotifier struct {
	w MessageWriter
}

var _ orders.Notifier = (*KafkaNotifier)(nil)

// NewKafkaWriter construye el writer de kafka-go hacia topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaNotifier construye el notificador sobre w.
func NewKafkaNotifier(w MessageWriter) *KafkaNotifier {
	return &KafkaNotifier{w: w}
}

// Publish serializa el evento a JSON y lo escribe con el contexto de traza en los headers.
func (n *KafkaNotifier) Publish(ctx context.Context, ev orders.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.Order.ID, 10)),
		Value: payload,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	if err := n.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close libera el writer.
func (n *KafkaNotifier) Close() error {
	return n.w.Close()
}

// headerCarrier adapta los headers de un mensaje a propagation.TextMapCarrier.
type headerCarrier struct {
	msg *kafka.Message
}

var _ propagation.TextMapCarrier = headerCarrier{}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
