package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountmodel "storefront/pkg/account/domain/model"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type mockChannel struct {
	published []published
	err       error
	closed    bool
}

func (m *mockChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func TestPublisher(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Event is published as JSON routed by its type", func(t *testing.T) {
		ch := &mockChannel{}
		p := newPublisher(ch, "storefront.events")
		p.now = func() time.Time { return at }
		userID := uuid.New()

		require.NoError(t, p.Handle(accountmodel.UserRegistered{UserID: userID, Email: "jane@example.com", FirstName: "Jane"}))
		require.Len(t, ch.published, 1)

		sent := ch.published[0]
		assert.Equal(t, "storefront.events", sent.exchange)
		assert.Equal(t, "UserRegistered", sent.key)
		assert.Equal(t, "application/json", sent.msg.ContentType)
		assert.Equal(t, "UserRegistered", sent.msg.Type)
		assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
		assert.NotEmpty(t, sent.msg.MessageId)

		var body struct {
			Type       string    `json:"type"`
			OccurredAt time.Time `json:"occurredAt"`
			Payload    struct {
				UserID    uuid.UUID
				Email     string
				FirstName string
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
		assert.Equal(t, "UserRegistered", body.Type)
		assert.True(t, at.Equal(body.OccurredAt))
		assert.Equal(t, userID, body.Payload.UserID)
		assert.Equal(t, "jane@example.com", body.Payload.Email)
	})

	t.Run("Broker failure is returned", func(t *testing.T) {
		boom := errors.New("channel closed")
		p := newPublisher(&mockChannel{err: boom}, "storefront.events")

		err := p.Handle(accountmodel.UserSignedIn{UserID: uuid.New()})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Close closes the channel", func(t *testing.T) {
		ch := &mockChannel{}
		require.NoError(t, newPublisher(ch, "x").Close())
		assert.True(t, ch.closed)
	})
}
