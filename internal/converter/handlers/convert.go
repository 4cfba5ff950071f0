package handlers

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Convert Handler
// ============================================================

// Convert конвертирует .klwp архив в нормализованный граф
func (h *Handler) Convert(c fiber.Ctx) error {
	h.log.Debug("convert request", "content_type", c.Get(fiber.HeaderContentType), "content_length", len(c.Body()))

	// Получаем файл из multipart/form-data
	file, err := c.FormFile("file")
	if err != nil {
		h.log.Warn("form file missing", "err", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	h.log.Info("converting archive", "file", file.Filename, "size", len(data))
	preset, err := h.converter.Convert(bytes.NewReader(data))
	if err != nil {
		return h.fail(c, "convert", err)
	}

	h.log.Info("conversion successful", "file", file.Filename, "items", len(preset.Root.Data))
	return c.JSON(preset)
}

// NormalizeDocument нормализует preset.json, переданный телом запроса
func (h *Handler) NormalizeDocument(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body required",
		})
	}

	preset, err := h.converter.ConvertDocument(c.Body())
	if err != nil {
		return h.fail(c, "normalize", err)
	}

	h.log.Info("normalization successful", "items", len(preset.Root.Data))
	return c.JSON(preset)
}
