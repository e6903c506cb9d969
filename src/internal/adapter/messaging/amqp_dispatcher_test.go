package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/domain"
)

type publisherStub struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
}

func (p *publisherStub) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	p.exchange = exchange
	p.key = key
	p.msg = msg
	return p.err
}

func TestAMQPDispatcherPublishesPersistentJSON(t *testing.T) {
	stub := &publisherStub{}
	d := &AMQPDispatcher{publisher: stub, exchangeName: "remittance", queueName: "transfer_dispatch"}

	msg := domain.TransferDispatchMessage{
		Reference:       "202401010000000000000000000001",
		RecipientAmount: decimal.RequireFromString("92.00"),
		Attempt:         2,
		Timestamp:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, d.Dispatch(context.Background(), msg))

	assert.Equal(t, "remittance", stub.exchange)
	assert.Equal(t, "transfer_dispatch", stub.key)
	assert.Equal(t, amqp091.Persistent, stub.msg.DeliveryMode)
	assert.Equal(t, "application/json", stub.msg.ContentType)
	assert.Equal(t, "202401010000000000000000000001-2", stub.msg.MessageId)

	var decoded domain.TransferDispatchMessage
	require.NoError(t, json.Unmarshal(stub.msg.Body, &decoded))
	assert.Equal(t, msg.Reference, decoded.Reference)
	assert.True(t, decoded.RecipientAmount.Equal(msg.RecipientAmount))
}

func TestAMQPDispatcherWrapsPublishError(t *testing.T) {
	brokerDown := errors.New("channel closed")
	d := &AMQPDispatcher{publisher: &publisherStub{err: brokerDown}, exchangeName: "x", queueName: "q"}

	err := d.Dispatch(context.Background(), domain.TransferDispatchMessage{Reference: "r"})
	require.Error(t, err)
	assert.ErrorIs(t, err, brokerDown)
}

func TestLogDispatcherHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLogDispatcher().Dispatch(ctx, domain.TransferDispatchMessage{Reference: "r"})
	assert.ErrorIs(t, err, context.Canceled)
}
