package handlers

import (
	"fmt"

	"klwp-gateway/internal/converter/models"
	"klwp-gateway/internal/converter/parser"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Export Handlers
// ============================================================

// ArchiveName: имя файла в Content-Disposition ответа /export.
const ArchiveName = "preset.klwp"

// Denormalize возвращает preset.json для сырой модели из тела запроса
func (h *Handler) Denormalize(c fiber.Ctx) error {
	raw, err := h.decodeBody(c)
	if err != nil {
		return h.fail(c, "denormalize", err)
	}

	document, err := h.exporter.DenormalizeInputs(raw)
	if err != nil {
		return h.fail(c, "denormalize", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(document)
}

// Export собирает .klwp архив из сырой модели
func (h *Handler) Export(c fiber.Ctx) error {
	raw, err := h.decodeBody(c)
	if err != nil {
		return h.fail(c, "export", err)
	}

	archive, err := h.exporter.Export(raw)
	if err != nil {
		return h.fail(c, "export", err)
	}

	h.log.Info("export successful", "size", len(archive))
	// Attachment экранирует имя файла; тип выставляем после него
	c.Attachment(ArchiveName)
	c.Set(fiber.HeaderContentType, "application/zip")
	return c.Send(archive)
}

func (h *Handler) decodeBody(c fiber.Ctx) (*models.RawPreset, error) {
	if len(c.Body()) == 0 {
		return nil, fmt.Errorf("%w: body required", models.ErrMalformedDocument)
	}
	return parser.DecodePreset(c.Body())
}
