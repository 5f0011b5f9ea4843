package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	ExchangeName = "storefront.notifications"
	ExchangeType = "topic"
)

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var dial = func(url string) (io.Closer, channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	return conn, ch, nil
}

// Publisher sends notification events to the topic exchange, routed by event kind.
type Publisher struct {
	conn   io.Closer
	ch     channel
	logger *slog.Logger
	mu     sync.Mutex
}

// Connect dials RabbitMQ, retrying up to attempts times, and declares the
// durable notifications exchange.
func Connect(ctx context.Context, url string, attempts int, delay time.Duration, logger *slog.Logger) (*Publisher, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var (
		conn io.Closer
		ch   channel
		err  error
	)
	for i := 1; i <= attempts; i++ {
		conn, ch, err = dial(url)
		if err == nil {
			break
		}
		logger.Warn("rabbitmq connect failed", slog.Int("attempt", i), slog.Any("error", err))
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeType, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("rabbitmq connected", slog.String("exchange", ExchangeName))
	return &Publisher{conn: conn, ch: ch, logger: logger}, nil
}

// Publish sends the event as persistent JSON with routing key = event kind.
func (p *Publisher) Publish(ctx context.Context, event model.NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		string(event.Kind),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification %s: %w", event.ID, err)
	}
	return nil
}

// Close shuts the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.ch.Close(), p.conn.Close())
}
