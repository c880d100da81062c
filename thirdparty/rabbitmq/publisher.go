package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// EventPublisher publishes user lifecycle events.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, msg UserEventMessage) error
}

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type UserEventMessage struct {
	Event      string    `json:"event"`
	UserID     int64     `json:"userId"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	TraceID    string    `json:"traceId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

// PublishUserEvent routes msg by its event name.
func (p *Publisher) PublishUserEvent(ctx context.Context, msg UserEventMessage) error {
	publishing, err := newPublishing(msg)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		UserEventsExchange, // exchange
		msg.Event,          // routing key
		false,              // mandatory
		false,              // immediate
		publishing,
	)
}

func newPublishing(msg UserEventMessage) (amqp091.Publishing, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp091.Persistent,
		CorrelationId: msg.TraceID,
		Timestamp:     msg.OccurredAt,
		Type:          msg.Event,
		Body:          body,
	}, nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
