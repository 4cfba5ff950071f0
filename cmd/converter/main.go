package main

import (
	"fmt"
	"os"
	"time"

	"klwp-gateway/internal/common/config"
	"klwp-gateway/internal/common/logger"
	"klwp-gateway/internal/common/middleware"
	"klwp-gateway/internal/converter/handlers"
	"klwp-gateway/internal/converter/mapper"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Converter Service
// ============================================================

func main() {
	cfg := config.MustLoad(config.WithPort("3001"))
	log := logger.ForService("CONVERTER", cfg.LogLevel, cfg.LogJSON)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit,
		AppName:      "Converter Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("CONVERTER"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Converter Routes
	// ============================================================

	handlers.New(mapper.NewExporter(cfg.ExportPretty), log).Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting converter service", "addr", addr, "env", cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}
