package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalogue.
type Product struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Value     float64   `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// ProductInput is the request body for creating or replacing a product.
// It never carries an ID.
type ProductInput struct {
	Name  string   `json:"name" validate:"required,notblank,max=255"`
	Value *float64 `json:"value" validate:"required,gte=0"`
}

// ApplyTo copies every business field onto p, leaving the ID untouched.
func (in ProductInput) ApplyTo(p *Product) {
	p.Name = in.Name
	if in.Value != nil {
		p.Value = *in.Value
	}
}

// Link is a hypermedia navigation entry attached to outbound products.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// ProductResource is the outbound representation of a Product.
type ProductResource struct {
	Product
	Links []Link `json:"links,omitempty"`
}

// NewProductResource wraps p together with the given links.
func NewProductResource(p Product, links ...Link) ProductResource {
	return ProductResource{Product: p, Links: links}
}
