package proxy

import (
	"strings"
	"time"

	"klwp-gateway/internal/common/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/proxy"
)

// ============================================================
// Proxy Handler
// ============================================================

type Proxy struct {
	log     logger.Logger
	timeout time.Duration
}

func New(log logger.Logger, timeout time.Duration) *Proxy {
	return &Proxy{log: log, timeout: timeout}
}

// To проксирует запрос на фиксированный URL
func (p *Proxy) To(targetURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return p.Forward(c, targetURL)
	}
}

// Under проксирует запрос на base + путь после prefix, сохраняя query string
// (для динамических путей вроде /presets/:id).
func (p *Proxy) Under(prefix, base string) fiber.Handler {
	return func(c fiber.Ctx) error {
		target := base + strings.TrimPrefix(c.Path(), prefix)
		if qs := string(c.Request().URI().QueryString()); qs != "" {
			target += "?" + qs
		}
		return p.Forward(c, target)
	}
}

// Forward пересылает метод, заголовки и тело как есть, включая multipart.
func (p *Proxy) Forward(c fiber.Ctx, targetURL string) error {
	p.log.Debug("forwarding",
		"method", c.Method(),
		"path", c.Path(),
		"content_type", c.Get(fiber.HeaderContentType),
		"content_length", len(c.Body()),
		"target", targetURL,
	)

	if err := proxy.DoTimeout(c, targetURL, p.timeout); err != nil {
		p.log.Error("upstream unreachable", "target", targetURL, "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	return nil
}
