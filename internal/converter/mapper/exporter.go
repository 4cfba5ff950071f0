package mapper

import (
	"fmt"

	"klwp-gateway/internal/converter/models"
	"klwp-gateway/internal/converter/parser"
)

// ============================================================
// Exporter
// ============================================================

// Exporter выполняет обратное преобразование: сырая модель → preset.json → архив.
// Значения по умолчанию не восстанавливаются, сериализуется то, что передал вызывающий.
type Exporter struct {
	indent bool
}

func NewExporter(indent bool) *Exporter {
	return &Exporter{indent: indent}
}

// DenormalizeInputs сериализует сырую модель в текст preset.json.
func (e *Exporter) DenormalizeInputs(raw *models.RawPreset) ([]byte, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: preset is nil", models.ErrMalformedDocument)
	}
	if e.indent {
		return parser.EncodePresetIndent(raw)
	}
	return parser.EncodePreset(raw)
}

// Export собирает .klwp архив с единственной записью preset.json.
func (e *Exporter) Export(raw *models.RawPreset) ([]byte, error) {
	document, err := e.DenormalizeInputs(raw)
	if err != nil {
		return nil, err
	}

	archive, err := parser.WriteArchive(document)
	if err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}
	return archive, nil
}
