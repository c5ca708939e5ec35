// Package amqp announces domain events on a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

const DefaultExchange = "seatkeeper.events"

// RoutingKey is the key an event is published under, e.g.
// "seatkeeper.seat-group-occupied".
func RoutingKey(ev domain.Event) string {
	return "seatkeeper." + ev.EventName()
}

type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	const op = "amqp.Dial"

	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: open channel:%w", op, err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: declare exchange:%w", op, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewMessage builds the persistent JSON message for an event.
func NewMessage(ev domain.Event, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		Type:         ev.EventName(),
		Body:         body,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev domain.Event) error {
	const op = "amqp.Publisher.Publish"

	msg, err := NewMessage(ev, time.Now())
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(ev),
		false, // mandatory
		false, // immediate
		msg,
	); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_ = p.ch.Close()
	return p.conn.Close()
}
