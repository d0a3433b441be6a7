package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// Publisher publishes order events to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new order event publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderPlaced publishes a message for a freshly committed order. The
// order is already durable when this runs; callers treat a publish failure as
// non-fatal.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, msg *models.OrderPlacedMessage) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		"orders_topic", // exchange
		"order.placed", // routing key
		false,          // mandatory
		false,          // immediate
		publishing,
	)
	if err != nil {
		return fmt.Errorf("failed to publish order.placed: %w", err)
	}

	p.logger.Debug("order_event_published", "Published order.placed event", "", map[string]interface{}{
		"order_id": msg.OrderID,
	})

	return nil
}
