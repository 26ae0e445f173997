package producer

import (
	"context"
	"encoding/json"
	"time"

	"markethub/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderEventsProducer публикует события жизненного цикла заказа.
// Реализует service.EventBus.
type OrderEventsProducer struct {
	writer *kafka.Writer
}

func NewOrderEventsProducer(brokers []string, topic string) *OrderEventsProducer {
	return &OrderEventsProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (p *OrderEventsProducer) publish(ctx context.Context, key string, ev envelope) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *OrderEventsProducer) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	return p.publish(ctx, e.OrderID.String(), envelope{Type: "order.placed", Payload: e})
}

func (p *OrderEventsProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.OrderID.String(), envelope{Type: "order.status_changed", Payload: e})
}

func (p *OrderEventsProducer) Close() error {
	return p.writer.Close()
}
