package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mctasu/vending-machine-service/internal/config"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// PaymentCompleted is emitted once per order, after the Pending->Paid
// transition wins the compare-and-set. Downstream consumers (machine
// dispatch, notifications) may rely on at-most-one event per order.
type PaymentCompleted struct {
	OrderID    string          `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg config.Kafka) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *Publisher) PublishPaymentCompleted(ctx context.Context, event PaymentCompleted) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payment event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
