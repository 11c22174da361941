package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"productapi/internal/config"
	"productapi/internal/events"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := config.NewLogger(cfg.Logger)

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

// run owns every resource opened for the server so deferred cleanup always
// happens before main exits.
func run(cfg *config.Config, logger zerolog.Logger) error {
	st, err := openStore(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error().Err(err).Msg("error closing product store")
		}
	}()

	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Error().Err(err).Msg("error closing RabbitMQ client")
			}
		}()

		publisher = events.NewPublisher(mqClient)
		if cfg.RabbitMQ.Consume {
			startEventConsumer(mqClient, logger)
		} else {
			logger.Debug().Msg("in-process product event consumer disabled")
		}
	} else {
		logger.Info().Msg("RABBITMQ_URL not set; product events disabled")
	}

	app := newApp(cfg, st, publisher, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return serve(app, cfg.Server.Port, quit, logger)
}

// serve listens on addr until a signal arrives on quit or the listener fails.
func serve(app *fiber.App, addr string, quit <-chan os.Signal, logger zerolog.Logger) error {
	listenErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("error during Fiber shutdown: %w", err)
	}
	logger.Info().Msg("server gracefully stopped")
	return nil
}

// startEventConsumer logs product events read back from the queue.
func startEventConsumer(client *rabbitmq.Client, logger zerolog.Logger) {
	if err := client.Consume(events.NewLoggingHandler(logger)); err != nil {
		logger.Error().Err(err).Msg("failed to start product event consumer")
	}
}
