package messaging

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
)

// DefineTopic declares the topic exchange and a durable queue bound to it so
// messages survive until a consumer picks them up. Rejected messages end up
// in the "_dead" queue of the topic.
func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := getName(prefix, topic)
	if err := defineDeadLetter(ch, name); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		queueArgs(name),
	); err != nil {
		return err
	}
	return ch.QueueBind(name, name, name, false, nil)
}

func deadLetterName(name string) string {
	return name + "_dead"
}

func queueArgs(name string) amqp.Table {
	return amqp.Table{"x-dead-letter-exchange": deadLetterName(name)}
}

func defineDeadLetter(ch *amqp.Channel, name string) error {
	dead := deadLetterName(name)
	if err := ch.ExchangeDeclare(dead, "fanout", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(dead, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.QueueBind(dead, "", dead, false, nil)
}

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func SendChange[V any](ctx context.Context, c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := getName(prefix, topic)
	return ch.PublishWithContext(
		ctx,
		name,
		name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         bytes,
		},
	)
}

type RabbitPublisher struct {
	connection *amqp.Connection
	prefix     string
}

// Dial connects and declares the given topics.
func Dial(url, prefix string, topics ...ChangeTopic) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range topics {
		if err = DefineTopic(ch, prefix, topic); err != nil {
			conn.Close()
			return nil, fmt.Errorf("declare %s: %w", topic, err)
		}
	}
	return &RabbitPublisher{connection: conn, prefix: prefix}, nil
}

func (p *RabbitPublisher) Connection() *amqp.Connection {
	return p.connection
}

func (p *RabbitPublisher) Prefix() string {
	return p.prefix
}

func (p *RabbitPublisher) Publish(ctx context.Context, topic ChangeTopic, data any) error {
	return SendChange(ctx, p.connection, p.prefix, topic, data)
}

func (p *RabbitPublisher) Close() error {
	return p.connection.Close()
}
