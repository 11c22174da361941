package repositories

import (
	"context"
	"errors"

	"productapi/internal/models"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when no product exists for an identifier.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Save inserts product when it has no ID yet, assigning a fresh one, and updates it otherwise.
	Save(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, product *models.Product) error
}
