package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names declared on publish. Durable, so messages survive
// broker restarts.
const (
	QueueBookingCreated   = "booking.created"
	QueueBookingCancelled = "booking.cancelled"
	QueueRiderCheckedIn   = "rider.checked_in"
)

// Publisher sends lifecycle events to RabbitMQ. Publishing is
// best-effort: every error is logged and returned, and callers are
// expected to carry on, so a broker outage never blocks a booking.
// A nil *Publisher is valid and publishes nothing.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the given AMQP URL, or nil
// when the URL is empty (broker disabled).
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishBookingCreated sends a BookingCreatedEvent.
func (p *Publisher) PublishBookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
	return p.publish(ctx, QueueBookingCreated, ev)
}

// PublishBookingCancelled sends a BookingCancelledEvent.
func (p *Publisher) PublishBookingCancelled(ctx context.Context, ev BookingCancelledEvent) error {
	return p.publish(ctx, QueueBookingCancelled, ev)
}

// PublishRiderCheckedIn sends a RiderCheckedInEvent.
func (p *Publisher) PublishRiderCheckedIn(ctx context.Context, ev RiderCheckedInEvent) error {
	return p.publish(ctx, QueueRiderCheckedIn, ev)
}

// publish dials the broker, declares the durable queue (idempotent)
// and sends one persistent JSON message on the default exchange.
func (p *Publisher) publish(ctx context.Context, queueName string, payload any) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
