package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"productapi/internal/links"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Literal response bodies returned by the product endpoints.
const (
	MsgProductNotFound    = "Product not found"
	MsgGetProductNotFound = "Product not found."
	MsgProductDeleted     = "Product deleted successfully."
	msgInvalidProductID   = "Invalid product ID"
	msgInvalidRequestBody = "Invalid request body"
	msgValidationFailed   = "Validation failed"
	msgCouldNotProcess    = "Could not process product"
)

// ProductService is the behaviour ProductHandler needs from the service layer.
type ProductService interface {
	CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   ProductService
	validator *validation.Validator
	links     links.Builder
	logger    zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service ProductService, linkBuilder links.Builder, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: validation.New(),
		links:     linkBuilder,
		logger:    logger.With().Str("handler", "product").Logger(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a product from a validated payload.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, ok, err := h.parseInput(c)
	if !ok {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return h.internalError(c, "create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProducts lists every product, each linked to its own resource.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.internalError(c, "list", err)
	}

	resources := make([]models.ProductResource, 0, len(products))
	for _, p := range products {
		resources = append(resources, models.NewProductResource(p, h.links.Product(p.ID)))
	}
	return c.Status(fiber.StatusOK).JSON(resources)
}

// HandleGetProductByID returns one product linked back to the product list.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok, err := h.parseID(c)
	if !ok {
		return err
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(MsgGetProductNotFound)
		}
		return h.internalError(c, "get", err)
	}
	return c.Status(fiber.StatusOK).JSON(models.NewProductResource(*product, h.links.Collection()))
}

// HandleUpdateProduct replaces the business fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok, err := h.parseID(c)
	if !ok {
		return err
	}
	input, ok, err := h.parseInput(c)
	if !ok {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, input)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(MsgProductNotFound)
		}
		return h.internalError(c, "update", err)
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleDeleteProduct removes an existing product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok, err := h.parseID(c)
	if !ok {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(MsgProductNotFound)
		}
		return h.internalError(c, "delete", err)
	}
	return c.Status(fiber.StatusOK).SendString(MsgProductDeleted)
}

// parseID reads the :id path parameter. When ok is false the response has
// already been written and err must be returned to fiber.
func (h *ProductHandler) parseID(c *fiber.Ctx) (id uuid.UUID, ok bool, err error) {
	raw := c.Params("id")
	id, parseErr := uuid.Parse(raw)
	// Only the canonical hyphenated form addresses a product.
	if parseErr == nil && id.String() != strings.ToLower(raw) {
		parseErr = fmt.Errorf("invalid UUID format: %q is not in canonical hyphenated form", raw)
	}
	if parseErr != nil {
		return uuid.Nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": msgInvalidProductID,
			"error":   parseErr.Error(),
		})
	}
	return id, true, nil
}

// parseInput decodes and validates the request body before any datastore call.
func (h *ProductHandler) parseInput(c *fiber.Ctx) (input models.ProductInput, ok bool, err error) {
	if parseErr := c.BodyParser(&input); parseErr != nil {
		h.logger.Debug().Err(parseErr).Msg("error parsing product request body")
		return input, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": msgInvalidRequestBody,
			"error":   parseErr.Error(),
		})
	}

	if violations := h.validator.Struct(input); violations != nil {
		return input, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": msgValidationFailed,
			"errors":  validation.Messages(violations),
		})
	}
	return input, true, nil
}

func (h *ProductHandler) internalError(c *fiber.Ctx, op string, err error) error {
	h.logger.Error().Err(err).Str("op", op).Msg("product request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": msgCouldNotProcess,
		"error":   err.Error(),
	})
}
