package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

type mockChannel struct{ mock.Mock }

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func TestPublisher_PublishEnvuelveYEnruta(t *testing.T) {
	ch := &mockChannel{}
	var sent amqp.Publishing
	ch.On("PublishWithContext", "stock.ledger.events", inventory.EventTransferStatusChanged, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).(amqp.Publishing) }).
		Return(nil).Once()

	p := newPublisher(ch, "stock.ledger.events", "stock-ledger", logger.Nop())
	ctx := WithCorrelationID(context.Background(), "req-42")
	err := p.Publish(ctx, inventory.EventTransferStatusChanged, inventory.TransferStatusChangedEvent{
		TransferID: "t-1", Number: "TRF-1", From: "pending", To: "in_transit", ActorID: "u1",
	})
	require.NoError(t, err)
	ch.AssertExpectations(t)

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	assert.Equal(t, "req-42", sent.CorrelationId)

	var ev Event
	require.NoError(t, json.Unmarshal(sent.Body, &ev))
	assert.Equal(t, inventory.EventTransferStatusChanged, ev.Type)
	assert.Equal(t, "stock-ledger", ev.Source)
	assert.Equal(t, sent.MessageId, ev.ID)

	var payload inventory.TransferStatusChangedEvent
	require.NoError(t, ev.UnmarshalData(&payload))
	assert.Equal(t, "in_transit", payload.To)
}

func TestPublisher_ErrorDelBroker(t *testing.T) {
	ch := &mockChannel{}
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	p := newPublisher(ch, "x", "s", logger.Nop())
	err := p.Publish(context.Background(), inventory.EventMovementAppended, map[string]string{"a": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), inventory.EventMovementAppended)
}

func TestPublisher_PayloadNoSerializable(t *testing.T) {
	p := newPublisher(&mockChannel{}, "x", "s", logger.Nop())
	err := p.Publish(context.Background(), "bad", make(chan int))
	require.Error(t, err)
}
