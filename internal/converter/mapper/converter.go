package mapper

import (
	"fmt"
	"io"

	"klwp-gateway/internal/converter/graph"
	"klwp-gateway/internal/converter/models"
	"klwp-gateway/internal/converter/parser"
)

// ============================================================
// Converter
// ============================================================

type Converter struct{}

func New() *Converter {
	return &Converter{}
}

// Convert .klwp архив → нормализованный граф
func (c *Converter) Convert(r io.Reader) (*models.Preset, error) {
	archive, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	document, err := parser.ReadDocument(archive)
	if err != nil {
		return nil, err
	}

	return c.ConvertDocument(document)
}

// ConvertDocument preset.json → нормализованный граф
func (c *Converter) ConvertDocument(document []byte) (*models.Preset, error) {
	raw, err := parser.DecodePreset(document)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// Normalize переносит preset_info как есть и нормализует preset_root.
func Normalize(raw *models.RawPreset) (*models.Preset, error) {
	if raw == nil || raw.Info == nil || raw.Root == nil {
		return nil, fmt.Errorf("%w: preset_info and preset_root are required", models.ErrMalformedDocument)
	}

	root, err := graph.Normalize(raw.Root)
	if err != nil {
		return nil, fmt.Errorf("normalize preset_root: %w", err)
	}

	return &models.Preset{
		Info: infoFromRaw(raw.Info),
		Root: *root,
	}, nil
}

func infoFromRaw(info *models.RawInfo) models.Info {
	return models.Info{
		Version:     deref(info.Version),
		Title:       deref(info.Title),
		Description: deref(info.Description),
		Author:      deref(info.Author),
		Email:       deref(info.Email),
		Width:       deref(info.Width),
		Height:      deref(info.Height),
		Features:    deref(info.Features),
		Release:     deref(info.Release),
		Locked:      deref(info.Locked),
		PFlags:      deref(info.PFlags),
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
