// Package events announces placed orders to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type OrderPlaced struct {
	OrderID       string          `json:"orderId"`
	ServerOrderID string          `json:"serverOrderId,omitempty"`
	Profile       string          `json:"profile"`
	UserID        string          `json:"userId,omitempty"`
	OrderType     string          `json:"orderType"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
	PlacedAt      time.Time       `json:"placedAt"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlaced) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (NopPublisher) Close() error                                          { return nil }

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func NewKafkaWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, e OrderPlaced) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("order-placed")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish order %s: %w", e.OrderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }
