package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/galeragate-ledger/internal/queue"
)

// EventPublisher publishes reservation events after checkout.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev q.ReservationConfirmedEvent) error
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishReservationConfirmed(context.Context, q.ReservationConfirmedEvent) error {
	return nil
}

// AMQPPublisher publishes events to a durable RabbitMQ queue.  Each publish
// dials its own connection so the console never holds a broker connection
// open between checkouts.
type AMQPPublisher struct {
	url   string
	queue string
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue}
}

// PublishReservationConfirmed sends ev as a persistent JSON message routed
// to the publisher's queue through the default exchange.  An empty EventID
// is filled with a random UUID that also becomes the message id.
func (p *AMQPPublisher) PublishReservationConfirmed(ctx context.Context, ev q.ReservationConfirmedEvent) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp.Dial -> %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("conn.Channel -> %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("ch.QueueDeclare -> %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("ch.PublishWithContext -> %w", err)
	}

	zap.L().Debug("reservation event published",
		zap.String("event_id", ev.EventID), zap.Int64("visitor_id", ev.VisitorID))
	return nil
}
