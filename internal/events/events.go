// Package events publishes and consumes product lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"productapi/internal/models"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// JSONPublisher sends a typed JSON message to a broker.
type JSONPublisher interface {
	PublishJSON(messageType string, body interface{}) error
}

// Publisher forwards product events to a JSONPublisher.
type Publisher struct {
	client JSONPublisher
}

// NewPublisher creates a Publisher backed by client.
func NewPublisher(client JSONPublisher) *Publisher {
	return &Publisher{client: client}
}

// PublishProductEvent publishes event using its type as the message type.
func (p *Publisher) PublishProductEvent(ctx context.Context, event models.ProductEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.client.PublishJSON(string(event.Type), event); err != nil {
		return fmt.Errorf("failed to publish %s for product %s: %w", event.Type, event.ProductID, err)
	}
	return nil
}

// NewLoggingHandler returns a delivery handler that decodes product events and logs them.
func NewLoggingHandler(logger zerolog.Logger) func(msg amqp.Delivery) error {
	logger = logger.With().Str("component", "product_events").Logger()
	return func(msg amqp.Delivery) error {
		var event models.ProductEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode product event: %w", err)
		}
		logger.Info().
			Str("type", string(event.Type)).
			Str("product_id", event.ProductID.String()).
			Str("name", event.Name).
			Float64("value", event.Value).
			Time("occurred_at", event.OccurredAt).
			Msg("product event received")
		return nil
	}
}
