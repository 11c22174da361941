package services

import (
	"context"
	"fmt"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventPublisher receives product lifecycle events after successful writes.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("component", "product_service").Logger(),
	}
}

// CreateProduct stores a new product built from input. Every call mints a new ID.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product := &models.Product{}
	input.ApplyTo(product)

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, models.ProductCreated, *product)
	return product, nil
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct overwrites every business field of the product with input.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(product)
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.publish(ctx, models.ProductUpdated, *product)
	return product, nil
}

// DeleteProduct removes the product stored under id.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	s.publish(ctx, models.ProductDeleted, *product)
	return nil
}

// publish never fails the caller; the write has already been applied.
func (s *ProductService) publish(ctx context.Context, eventType models.ProductEventType, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(ctx, models.NewProductEvent(eventType, product)); err != nil {
		s.logger.Warn().Err(err).
			Str("event", string(eventType)).
			Str("product_id", product.ID.String()).
			Msg("failed to publish product event")
	}
}
