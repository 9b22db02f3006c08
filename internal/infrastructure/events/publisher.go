package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"verslohub/internal/domain/entity"
	"verslohub/pkg/logger"
)

// Publisher relays notification documents to interested consumers (mailers,
// push services) as JSON events. The relay is best-effort: the in-store
// notification is the source of truth.
type Publisher interface {
	PublishNotification(ctx context.Context, notification *entity.Notification) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp091.Connection
	exchange string
}

const (
	dialAttempts = 5
	dialBaseWait = 2 * time.Second
)

// NewAMQPPublisher connects to the broker with backoff and declares the topic
// exchange the relay publishes to.
func NewAMQPPublisher(ctx context.Context, url, exchange string) (Publisher, error) {
	conn, err := dialWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}

	return &amqpPublisher{
		conn:     conn,
		exchange: exchange,
	}, nil
}

func dialWithRetry(ctx context.Context, url string) (*amqp091.Connection, error) {
	var lastErr error

	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err := amqp091.Dial(url)
		if err == nil {
			if attempt > 1 {
				logger.Info("AMQP connected on attempt %d", attempt)
			}
			return conn, nil
		}
		lastErr = err

		wait := dialBaseWait * time.Duration(1<<(attempt-1))
		logger.Warn("AMQP dial failed (attempt %d, retrying in %v): %v", attempt, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (p *amqpPublisher) PublishNotification(ctx context.Context, notification *entity.Notification) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	key := "notifications.user"
	if notification.VendorID != "" {
		key = "notifications.vendor"
	}

	return ch.PublishWithContext(
		ctx, p.exchange, key, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *amqpPublisher) Close() error {
	return p.conn.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishNotification(ctx context.Context, notification *entity.Notification) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
