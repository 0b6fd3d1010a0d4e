package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyra-app/cyra/internal/api"
	"github.com/cyra-app/cyra/internal/config"
	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/notify"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional, env vars override)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	handler := api.NewHandler(store, cfg.SecretKey, location)

	app := fiber.New(fiber.Config{
		AppName:               "Cyra",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	api.RegisterRoutes(app, handler)

	scanner := notify.NewReminderScanner(store, location)
	if err := scanner.Start(cfg.ReminderCron); err != nil {
		log.Fatalf("reminder scan init failed: %v", err)
	}
	defer scanner.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Cyra listening on %s (store: %s, tz: %s)", cfg.Listen, cfg.Store.Backend, location.String())
	if err := app.Listen(cfg.Listen); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func openStore(cfg *config.Config) (docstore.Client, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		store, err := docstore.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "firestore":
		tokens := docstore.StaticTokenSource(cfg.Store.FirestoreToken)
		return docstore.NewFirestoreClient(cfg.Store.FirestoreProject, tokens), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid timezone %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
