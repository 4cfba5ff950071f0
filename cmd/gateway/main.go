package main

import (
	"fmt"
	"os"
	"time"

	"klwp-gateway/internal/common/config"
	"klwp-gateway/internal/common/logger"
	"klwp-gateway/internal/common/middleware"
	"klwp-gateway/internal/gateway/handlers"
	"klwp-gateway/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.MustLoad()
	log := logger.ForService("GATEWAY", cfg.LogLevel, cfg.LogJSON)
	timeout := time.Duration(cfg.WriteTimeout) * time.Second

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: timeout,
		BodyLimit:    cfg.BodyLimit,
		AppName:      "KLWP Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("GATEWAY"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	health := handlers.NewHealth(map[string]string{
		"converter": cfg.ConverterURL,
		"library":   cfg.LibraryURL,
	}, timeout)

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(proxy.APIPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "KLWP Gateway v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	p := proxy.New(logger.ForService("PROXY", cfg.LogLevel, cfg.LogJSON), timeout)
	proxy.Mount(api, p, cfg.ConverterURL, cfg.LibraryURL)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting api gateway", "addr", addr, "env", cfg.Environment,
		"converter", cfg.ConverterURL, "library", cfg.LibraryURL)

	if err := app.Listen(addr); err != nil {
		log.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}
