package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"productapi/internal/events"
	"productapi/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJSONPublisher struct {
	mock.Mock
}

func (m *MockJSONPublisher) PublishJSON(messageType string, body interface{}) error {
	args := m.Called(messageType, body)
	return args.Error(0)
}

func TestPublisher_PublishProductEvent(t *testing.T) {
	event := models.NewProductEvent(models.ProductCreated, models.Product{ID: uuid.New(), Name: "Laptop", Value: 1200})

	t.Run("forwards event", func(t *testing.T) {
		client := new(MockJSONPublisher)
		client.On("PublishJSON", "product.created", event).Return(nil).Once()

		err := events.NewPublisher(client).PublishProductEvent(context.Background(), event)

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("wraps broker error", func(t *testing.T) {
		client := new(MockJSONPublisher)
		client.On("PublishJSON", "product.created", event).Return(errors.New("channel closed")).Once()

		err := events.NewPublisher(client).PublishProductEvent(context.Background(), event)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
		assert.Contains(t, err.Error(), event.ProductID.String())
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := new(MockJSONPublisher)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := events.NewPublisher(client).PublishProductEvent(ctx, event)

		assert.ErrorIs(t, err, context.Canceled)
		client.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything)
	})
}

func TestNewLoggingHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := events.NewLoggingHandler(zerolog.New(&buf))

	event := models.NewProductEvent(models.ProductDeleted, models.Product{ID: uuid.New(), Name: "Mouse", Value: 25})
	body, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, handler(amqp.Delivery{Body: body}))
	assert.Contains(t, buf.String(), `"type":"product.deleted"`)
	assert.Contains(t, buf.String(), event.ProductID.String())

	assert.Error(t, handler(amqp.Delivery{Body: []byte("not json")}))
}
