package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"volleybank/cmd"
	"volleybank/config"
	"volleybank/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if config.Get().Environment == "development" {
		log.SetLevel(log.DebugLevel)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatal("Migration error: ", err)
			}
			return
		case "seed":
			if err := cmd.Seed(context.Background()); err != nil {
				log.Fatal("Seed error: ", err)
			}
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: volleybank migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
