package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/sample-api/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler processes one user event. A returned error drops the message.
type Handler func(ctx context.Context, msg UserEventMessage) error

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	handler Handler
}

func NewConsumer(host string, port int, user, password string, handler Handler) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		handler: handler,
	}, nil
}

// Start consumes until ctx is cancelled or the channel closes. The returned
// channel is closed when consumption stops.
func (c *Consumer) Start(ctx context.Context) (<-chan struct{}, error) {
	// Set QoS to 1 - process one message at a time
	err := c.channel.Qos(1, 0, false)
	if err != nil {
		return nil, err
	}

	msgs, err := c.channel.Consume(
		UserEventsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return done, nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	var event UserEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		logger.Error("Failed to unmarshal user event", zap.Error(err))
		_ = msg.Ack(false)
		return
	}

	if err := c.handler(ctx, event); err != nil {
		logger.Error("Failed to handle user event",
			zap.String("event", event.Event), zap.Int64("user_id", event.UserID), zap.String("trace_id", event.TraceID), zap.Error(err))
		// no requeue: delivery is attempted once
		_ = msg.Nack(false, false)
		return
	}

	_ = msg.Ack(false)
	logger.Info("User event handled", zap.String("event", event.Event), zap.Int64("user_id", event.UserID))
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
