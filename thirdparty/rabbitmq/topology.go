package rabbitmq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

const (
	UserEventsExchange = "user_events_exchange"
	UserEventsQueue    = "user_events_notifier_queue"
	userEventsBinding  = "user.#"
)

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

// declareTopology is idempotent so publisher and consumer can both run it.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		UserEventsExchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-delete
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		UserEventsQueue, // name
		true,            // durable
		false,           // auto-delete
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		UserEventsQueue,    // queue name
		userEventsBinding,  // routing key
		UserEventsExchange, // exchange
		false,              // no-wait
		nil,                // arguments
	)
}
