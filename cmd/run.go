package cmd

import (
	"context"
	"fmt"
	"time"

	"volleybank/config"
	"volleybank/database"
	"volleybank/events"
	"volleybank/handlers"
	"volleybank/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting volleybank...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), cfg.PoolSettings())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	registerEventLogging(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	app := fiber.New(fiber.Config{
		AppName:      "volleybank",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handlers.New(uowFactory).Register(app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.ListenAddr)
	}()
	log.WithFields(log.Fields{
		"addr":        cfg.ListenAddr,
		"environment": cfg.Environment,
	}).Info("Server is running")

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Warn("Server shutdown was not clean")
	}

	log.Info("Shutdown completed")
	return nil
}

// registerEventLogging wires the audit log onto the process-wide event bus
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeMatchRecorded, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.MatchRecordedEvent); ok {
			log.WithFields(log.Fields{
				"matchId":      ev.MatchID,
				"winningTeam":  ev.WinningTeam,
				"stake":        ev.StakeAmount.StringFixed(2),
				"participants": ev.ParticipantCount,
				"winners":      ev.WinnerCount,
			}).Info("Match committed, stake distributed")
		}
	})
	bus.Subscribe(events.EventTypeMatchDeleted, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.MatchDeletedEvent); ok {
			log.WithField("matchId", ev.MatchID).Info("Match deleted")
		}
	})
	bus.Subscribe(events.EventTypePlayerCreated, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.PlayerCreatedEvent); ok {
			log.WithFields(log.Fields{
				"playerId": ev.PlayerID,
				"name":     ev.Name,
				"team":     ev.Team,
			}).Info("Player registered")
		}
	})
}
