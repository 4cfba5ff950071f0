package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"klwp-gateway/internal/common/config"
	"klwp-gateway/internal/common/logger"
	"klwp-gateway/internal/common/middleware"
	"klwp-gateway/internal/library/client"
	"klwp-gateway/internal/library/handlers"
	"klwp-gateway/internal/library/repository"
	"klwp-gateway/internal/library/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Library Service
// ============================================================

func main() {
	cfg := config.MustLoad(config.WithPort("3002"))
	log := logger.ForService("LIBRARY", cfg.LogLevel, cfg.LogJSON)

	db, err := repository.OpenSQLite(cfg.LibraryDBPath)
	if err != nil {
		log.Error("open db", "path", cfg.LibraryDBPath, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Error("init db", "err", err)
		os.Exit(1)
	}

	storage := service.NewFileStorage(cfg.LibraryStorage)
	if err := storage.EnsureDir(); err != nil {
		log.Error("init storage", "err", err)
		os.Exit(1)
	}

	catalog := service.NewCatalog(repo, storage)
	converter := client.NewConverterClient(cfg.ConverterURL, time.Duration(cfg.WriteTimeout)*time.Second)
	presets := handlers.NewPresetsHandler(catalog, converter, log)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit,
		AppName:      "Library Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("LIBRARY"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := catalog.Ready(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Preset Routes
	// ============================================================

	presets.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting library service", "addr", addr, "env", cfg.Environment, "converter", cfg.ConverterURL)

	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}
