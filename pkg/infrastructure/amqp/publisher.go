package amqp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"storefront/pkg/common/domain"
)

const publishTimeout = 5 * time.Second

var tracer = otel.Tracer("storefront/amqp")

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type envelope struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Payload    domain.Event `json:"payload"`
}

// Publisher sends domain events to a topic exchange, routed by event type.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// Dial connects to the broker, retrying with exponential backoff until
// maxElapsed passes, and declares the exchange.
func Dial(url, exchange string, maxElapsed time.Duration) (*Publisher, error) {
	var conn *amqp.Connection
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsed

	err := backoff.RetryNotify(func() error {
		var err error
		conn, err = amqp.Dial(url)
		return err
	}, policy, func(err error, next time.Duration) {
		log.WithError(err).WithField("retryIn", next).Warn("broker is not reachable yet")
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "declare exchange")
	}

	log.WithField("exchange", exchange).Info("connected to broker")
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

func newPublisher(ch channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: time.Now}
}

func (p *Publisher) Handle(event domain.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "amqp.publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.destination", p.exchange),
		attribute.String("messaging.event_type", event.Type()),
	)

	now := p.now().UTC()
	body, err := json.Marshal(envelope{Type: event.Type(), OccurredAt: now, Payload: event})
	if err != nil {
		span.RecordError(err)
		return errors.Wrapf(err, "encode %s", event.Type())
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, event.Type(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now,
		Type:         event.Type(),
		Body:         body,
	})
	if err != nil {
		span.RecordError(err)
		return errors.Wrapf(err, "publish %s", event.Type())
	}
	return nil
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return errors.Wrap(err, "close channel")
	}
	if p.conn != nil {
		return errors.Wrap(p.conn.Close(), "close connection")
	}
	return nil
}
