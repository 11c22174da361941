package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductEventType names a product lifecycle event.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after a product has been written.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  uuid.UUID        `json:"product_id"`
	Name       string           `json:"name"`
	Value      float64          `json:"value"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewProductEvent builds an event of the given type for p.
func NewProductEvent(t ProductEventType, p Product) ProductEvent {
	return ProductEvent{
		Type:       t,
		ProductID:  p.ID,
		Name:       p.Name,
		Value:      p.Value,
		OccurredAt: time.Now().UTC(),
	}
}
