package main

import (
	"context"
	"fmt"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/links"
	"productapi/internal/middleware"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
)

// store bundles the product repository with its lifecycle hooks.
type store struct {
	repo  repositories.ProductRepository
	ping  handlers.Pinger
	close func() error
}

// openStore builds the repository selected by cfg.Driver.
func openStore(cfg config.DatabaseConfig, logger zerolog.Logger) (*store, error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn().Msg("using in-memory product store; data is lost on restart")
		return &store{
			repo:  repositories.NewMemoryProductRepository(),
			close: func() error { return nil },
		}, nil
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open product store: %w", err)
	}
	logger.Info().Str("driver", cfg.Driver).Msg("connected to database")

	return &store{
		repo:  repositories.NewGORMProductRepository(db),
		ping:  func(ctx context.Context) error { return database.Ping(ctx, db) },
		close: func() error { return database.Close(db) },
	}, nil
}

// newApp wires services, handlers and middleware into a Fiber app.
// publisher may be nil when product events are disabled.
func newApp(cfg *config.Config, st *store, publisher services.EventPublisher, logger zerolog.Logger) *fiber.App {
	productService := services.NewProductService(st.repo, publisher, logger)
	productHandler := handlers.NewProductHandler(productService, links.NewBuilder(cfg.Server.BaseURL), logger)
	healthHandler := handlers.NewHealthHandler(st.ping)

	app := fiber.New(fiber.Config{
		AppName:               "productapi",
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())

	healthHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)

	return app
}
