// Package service hands purchase requests over to the raffle backend.
// Publishing failures are logged and returned so the caller can report
// them to the buyer.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/queue"
)

// Publisher publishes events to RabbitMQ, one connection per event.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishSelectionSubmitted sends ev to the durable selection.submitted
// queue as a persistent message.
func (p *Publisher) PublishSelectionSubmitted(ctx context.Context, ev queue.SelectionSubmittedEvent) error {
	fields := log.Fields{"raffle_id": ev.RaffleID, "numbers": len(ev.Numbers)}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.WithFields(fields).WithError(err).Error("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithFields(fields).WithError(err).Error("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.SelectionSubmittedQueue, // name
		true,                          // durable
		false,                         // autoDelete
		false,                         // exclusive
		false,                         // noWait
		nil,                           // args
	); err != nil {
		log.WithFields(fields).WithError(err).Error("rabbitmq: queue declare failed")
		return err
	}

	pub, err := newPublishing(ev, time.Now())
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", queue.SelectionSubmittedQueue, false, false, pub); err != nil {
		log.WithFields(fields).WithError(err).Error("rabbitmq: publish failed")
		return err
	}
	log.WithFields(fields).Info("selection submitted to backend")
	return nil
}

// newPublishing wraps ev as a persistent JSON message.  The request id
// travels as the correlation id so broker logs join the HTTP logs.
func newPublishing(ev queue.SelectionSubmittedEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Timestamp:     now.UTC(),
		CorrelationId: ev.RequestID,
		Body:          body,
	}, nil
}
