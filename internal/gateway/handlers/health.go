package handlers

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

type Health struct {
	http      *resty.Client
	upstreams map[string]string // имя -> базовый URL
	started   time.Time
}

func NewHealth(upstreams map[string]string, timeout time.Duration) *Health {
	return &Health{
		http:      resty.New().SetTimeout(timeout),
		upstreams: upstreams,
		started:   time.Now(),
	}
}

// LivenessProbe проверяет, что приложение работает
func (h *Health) LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe опрашивает /health/ready всех сервисов за шлюзом
func (h *Health) ReadinessProbe(c fiber.Ctx) error {
	services := make(fiber.Map, len(h.upstreams))
	ready := true
	for name, base := range h.upstreams {
		resp, err := h.http.R().SetContext(c.Context()).Get(base + "/health/ready")
		switch {
		case err != nil:
			services[name] = "unreachable"
			ready = false
		case resp.IsError():
			services[name] = "not ready"
			ready = false
		default:
			services[name] = "ready"
		}
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "not ready",
			"services": services,
		})
	}
	return c.JSON(fiber.Map{
		"status":   "ready",
		"services": services,
	})
}

// StartupProbe проверяет, что приложение успешно запустилось
func (h *Health) StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
