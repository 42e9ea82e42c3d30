package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orderwatch/internal/logger"
	"orderwatch/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher emits one order.paid event per new order to the
// order-events topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewKafkaPublisher(brokers string, logger *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        "order-events",
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: time.Second,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Name() string { return "kafka" }

func (p *KafkaPublisher) HandleOrder(ctx context.Context, order models.Order) error {
	event := models.OrderEvent{
		ID:        uuid.New().String(),
		Type:      models.EventTypeOrderPaid,
		Order:     order,
		Timestamp: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ProductOrderID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published %s for order %s", event.Type, order.ProductOrderID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
