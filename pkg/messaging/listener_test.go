package messaging

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type recordingAcknowledger struct {
	acks     int
	nacks    int
	requeued []bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acks++
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacks++
	a.requeued = append(a.requeued, requeue)
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestHandleDeliveryAcksSuccess(t *testing.T) {
	ack := &recordingAcknowledger{}
	handleDelivery(amqp.Delivery{Acknowledger: ack, Body: []byte("{}")}, EnquiryTopic, func(amqp.Delivery) error {
		return nil
	})
	if ack.acks != 1 || ack.nacks != 0 {
		t.Errorf("Expected a single ack, got %+v", ack)
	}
}

func TestHandleDeliveryRetriesOnceThenDeadLetters(t *testing.T) {
	failing := func(amqp.Delivery) error { return errors.New("smtp down") }

	ack := &recordingAcknowledger{}
	handleDelivery(amqp.Delivery{Acknowledger: ack}, EnquiryTopic, failing)
	if ack.acks != 0 || len(ack.requeued) != 1 || !ack.requeued[0] {
		t.Errorf("Expected first failure to be requeued, got %+v", ack)
	}

	handleDelivery(amqp.Delivery{Acknowledger: ack, Redelivered: true}, EnquiryTopic, failing)
	if ack.acks != 0 || len(ack.requeued) != 2 || ack.requeued[1] {
		t.Errorf("Expected redelivered failure to be dead lettered, got %+v", ack)
	}
}

func TestQueueArgsPointAtDeadLetterExchange(t *testing.T) {
	name := getName("catalog", EnquiryTopic)
	if name != "catalog_enquiry" {
		t.Errorf("Expected catalog_enquiry, got %s", name)
	}
	args := queueArgs(name)
	if args["x-dead-letter-exchange"] != "catalog_enquiry_dead" {
		t.Errorf("Expected dead letter exchange catalog_enquiry_dead, got %v", args)
	}
	if err := args.Validate(); err != nil {
		t.Errorf("Expected valid queue arguments, got %v", err)
	}
}
