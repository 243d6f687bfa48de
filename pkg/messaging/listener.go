package messaging

import (
	"github.com/rs/zerolog/log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumeShared reads the durable queue of the topic; listeners share the work.
func ConsumeShared(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	if err := DefineTopic(ch, prefix, topic); err != nil {
		return nil, err
	}
	return ch.Consume(getName(prefix, topic), "", false, false, false, false, nil)
}

func ListenToQueue(ch *amqp.Channel, prefix string, topic ChangeTopic, handler func(amqp.Delivery) error) error {
	msgs, err := ConsumeShared(ch, prefix, topic)
	if err != nil {
		return err
	}
	go listen(ch, topic, msgs, handler)
	return nil
}

func listen(ch *amqp.Channel, topic ChangeTopic, msgs <-chan amqp.Delivery, handler func(amqp.Delivery) error) {
	defer ch.Close()
	for d := range msgs {
		handleDelivery(d, topic, handler)
	}
}

// handleDelivery acks on success. A failing message is requeued once, the
// second failure sends it to the dead letter queue of the topic.
func handleDelivery(d amqp.Delivery, topic ChangeTopic, handler func(amqp.Delivery) error) {
	if err := handler(d); err != nil {
		requeue := !d.Redelivered
		log.Error().Err(err).Str("topic", string(topic)).Bool("requeue", requeue).Msg("error processing message")
		if nackErr := d.Nack(false, requeue); nackErr != nil {
			log.Error().Err(nackErr).Str("topic", string(topic)).Msg("failed to nack message")
		}
		return
	}
	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Str("topic", string(topic)).Msg("failed to ack message")
	}
}
