package handlers

import (
	"errors"
	"io"
	"strconv"

	"klwp-gateway/internal/common/logger"
	"klwp-gateway/internal/converter/models"
	"klwp-gateway/internal/library/client"
	"klwp-gateway/internal/library/repository"
	"klwp-gateway/internal/library/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Presets Handler
// ============================================================

type PresetsHandler struct {
	catalog   *service.Catalog
	converter *client.ConverterClient
	log       logger.Logger
}

func NewPresetsHandler(catalog *service.Catalog, converter *client.ConverterClient, log logger.Logger) *PresetsHandler {
	return &PresetsHandler{
		catalog:   catalog,
		converter: converter,
		log:       log,
	}
}

func (h *PresetsHandler) Register(r fiber.Router) {
	r.Post("/presets", h.Upload)
	r.Get("/presets", h.List)
	r.Get("/presets/:id", h.Get)
	r.Get("/presets/:id/archive", h.GetArchive)
	r.Get("/presets/:id/normalized", h.GetNormalized)
	r.Delete("/presets/:id", h.Delete)
}

// Upload принимает .klwp архив в multipart/form-data
func (h *PresetsHandler) Upload(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file required"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	record, err := h.catalog.Upload(c.Context(), file.Filename, data)
	if err != nil {
		if status, ok := rejectStatus(err); ok {
			h.log.Warn("upload rejected", "file", file.Filename, "err", err)
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("upload failed", "file", file.Filename, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store preset"})
	}

	h.log.Info("preset stored", "id", record.ID, "title", record.Title, "size", record.Size)
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *PresetsHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be an integer"})
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "offset must be an integer"})
	}

	page, err := h.catalog.List(c.Context(), limit, offset)
	if err != nil {
		h.log.Error("list failed", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list presets"})
	}
	return c.JSON(page)
}

func (h *PresetsHandler) Get(c fiber.Ctx) error {
	record, err := h.catalog.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(record)
}

func (h *PresetsHandler) GetArchive(c fiber.Ctx) error {
	record, data, err := h.catalog.Archive(c.Context(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}

	// Attachment экранирует имя файла; тип выставляем после него
	c.Attachment(record.Filename)
	c.Set(fiber.HeaderContentType, "application/zip")
	return c.Send(data)
}

// GetNormalized пересылает сохраненный архив в конвертер и отдает его ответ как есть
func (h *PresetsHandler) GetNormalized(c fiber.Ctx) error {
	record, data, err := h.catalog.Archive(c.Context(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}

	body, err := h.converter.Convert(c.Context(), record.Filename, data)
	if err != nil {
		var upstream *client.UpstreamError
		if errors.As(err, &upstream) {
			h.log.Warn("converter rejected preset", "id", record.ID, "status", upstream.Status)
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(upstream.Status).Send(upstream.Body)
		}
		h.log.Error("converter unavailable", "id", record.ID, "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "converter failed"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (h *PresetsHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.catalog.Delete(c.Context(), id); err != nil {
		return h.lookupError(c, err)
	}
	h.log.Info("preset deleted", "id", id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PresetsHandler) lookupError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "preset not found"})
	}
	h.log.Error("preset lookup failed", "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

// rejectStatus подбирает статус для архива, который не проходит разбор или нормализацию.
func rejectStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, models.ErrMalformedContainer), errors.Is(err, models.ErrMalformedDocument):
		return fiber.StatusBadRequest, true
	case errors.Is(err, models.ErrSchemaViolation):
		return fiber.StatusUnprocessableEntity, true
	}
	return 0, false
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
