package handlers

import (
	"errors"

	"klwp-gateway/internal/common/logger"
	"klwp-gateway/internal/converter/mapper"
	"klwp-gateway/internal/converter/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Handler
// ============================================================

type Handler struct {
	converter *mapper.Converter
	exporter  *mapper.Exporter
	log       logger.Logger
}

func New(exporter *mapper.Exporter, log logger.Logger) *Handler {
	return &Handler{
		converter: mapper.New(),
		exporter:  exporter,
		log:       log,
	}
}

// Register вешает маршруты конвертера на роутер.
func (h *Handler) Register(r fiber.Router) {
	r.Post("/convert", h.Convert)
	r.Post("/normalize", h.NormalizeDocument)
	r.Post("/denormalize", h.Denormalize)
	r.Post("/export", h.Export)
	r.Get("/schema", h.Schema)
}

// statusFor: ошибки входных данных 400, нарушение схемы 422, остальное 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrMalformedContainer), errors.Is(err, models.ErrMalformedDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrSchemaViolation):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c fiber.Ctx, op string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error(op+" failed", "err", err)
	} else {
		h.log.Warn(op+" rejected", "status", status, "err", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
