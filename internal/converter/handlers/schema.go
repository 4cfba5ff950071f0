package handlers

import (
	"klwp-gateway/internal/converter/mapper"

	"github.com/gofiber/fiber/v3"
)

// Schema отдает JSON Schema нормализованного пресета
func (h *Handler) Schema(c fiber.Ctx) error {
	data, err := mapper.SchemaJSON()
	if err != nil {
		return h.fail(c, "schema", err)
	}
	c.Set(fiber.HeaderContentType, "application/schema+json")
	return c.Send(data)
}
