package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPlaced is emitted once per committed order.
type OrderPlaced struct {
	OrderID   uuid.UUID       `json:"order_id"`
	UserID    uuid.UUID       `json:"user_id"`
	SellerID  uuid.UUID       `json:"seller_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	PlacedAt  time.Time       `json:"placed_at"`
}

type Publisher interface {
	PublishOrdersPlaced(ctx context.Context, events []OrderPlaced) error
	Close() error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) Publisher {
	return &kafkaPublisher{producer: producer, topic: topic}
}

// NewKafkaPublisher falls back to a no-op publisher when no brokers are configured.
func NewKafkaPublisher(brokers []string, topic string) (Publisher, error) {
	if len(brokers) == 0 {
		return NoopPublisher{}, nil
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start kafka producer: %w", err)
	}

	return NewPublisher(producer, topic), nil
}

func (p *kafkaPublisher) PublishOrdersPlaced(ctx context.Context, events []OrderPlaced) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal order event: %w", err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(e.UserID.String()),
			Value: sarama.ByteEncoder(data),
		})
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("failed to publish %d order events: %w", len(msgs), err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) PublishOrdersPlaced(context.Context, []OrderPlaced) error { return nil }
func (NoopPublisher) Close() error { return nil }
