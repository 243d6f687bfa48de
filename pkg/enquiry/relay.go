package enquiry

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/messaging"
)

// Relay consumes queued enquiries and hands them to sink, typically the
// email sink, so the web tier only depends on the broker.
func Relay(ch *amqp.Channel, prefix string, sink Sink) error {
	return messaging.ListenToQueue(ch, prefix, messaging.EnquiryTopic, func(d amqp.Delivery) error {
		return relayDelivery(d.Body, sink)
	})
}

func relayDelivery(body []byte, sink Sink) error {
	var e Enquiry
	if err := jsoncompat.Unmarshal(body, &e); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sink.Deliver(ctx, &e)
}
