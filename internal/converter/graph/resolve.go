package graph

import (
	"fmt"

	"klwp-gateway/internal/converter/models"
)

const (
	DefaultItemColor = "#FFFFFFFF"
	DefaultRootColor = "#FF000000"
)

// ============================================================
// Anchor
// ============================================================

var anchorTable = map[models.RawAnchor]models.Anchor{
	models.AnchorTop:         {H: models.AnchorMiddle, V: models.AnchorStart},
	models.AnchorTopLeft:     {H: models.AnchorStart, V: models.AnchorStart},
	models.AnchorTopRight:    {H: models.AnchorEnd, V: models.AnchorStart},
	models.AnchorCenter:      {H: models.AnchorMiddle, V: models.AnchorMiddle},
	models.AnchorCenterLeft:  {H: models.AnchorStart, V: models.AnchorMiddle},
	models.AnchorCenterRight: {H: models.AnchorEnd, V: models.AnchorMiddle},
	models.AnchorBottom:      {H: models.AnchorMiddle, V: models.AnchorEnd},
	models.AnchorBottomLeft:  {H: models.AnchorStart, V: models.AnchorEnd},
	models.AnchorBottomRight: {H: models.AnchorEnd, V: models.AnchorEnd},
}

// resolveAnchor раскладывает position_anchor на две оси; nil остается nil.
func resolveAnchor(raw *models.RawAnchor) (*models.Anchor, error) {
	if raw == nil {
		return nil, nil
	}
	anchor, ok := anchorTable[*raw]
	if !ok {
		return nil, fmt.Errorf("%w: unknown position_anchor %q", models.ErrSchemaViolation, *raw)
	}
	return &anchor, nil
}

// leafAnchor: без position_anchor корневой лист прижат к верху, вложенный стоит по центру.
func leafAnchor(raw *models.RawAnchor, isRoot bool) (models.Anchor, error) {
	anchor, err := resolveAnchor(raw)
	if err != nil {
		return models.Anchor{}, err
	}
	if anchor != nil {
		return *anchor, nil
	}
	if isRoot {
		return models.Anchor{H: models.AnchorMiddle, V: models.AnchorStart}, nil
	}
	return models.Anchor{H: models.AnchorMiddle, V: models.AnchorMiddle}, nil
}

// ============================================================
// Offset / Padding
// ============================================================

// resolveOffset возвращает nil, если обе оси не заданы; иначе недостающая ось = 0.
func resolveOffset(x, y *float64) *models.Offset {
	if x == nil && y == nil {
		return nil
	}
	return &models.Offset{X: orZero(x), Y: orZero(y)}
}

func resolvePadding(top, right, bottom, left *float64) *models.Padding {
	if top == nil && right == nil && bottom == nil && left == nil {
		return nil
	}
	return &models.Padding{
		Top:    orZero(top),
		Right:  orZero(right),
		Bottom: orZero(bottom),
		Left:   orZero(left),
	}
}

// ============================================================
// Paint
// ============================================================

func itemPaint(color *string) models.Paint {
	return models.Paint{Color: orDefault(color, DefaultItemColor)}
}

func rootPaint(color *string) models.Paint {
	return models.Paint{Color: orDefault(color, DefaultRootColor)}
}

// ============================================================
// Helpers
// ============================================================

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// valueOr возвращает указатель на значение или на значение по умолчанию.
func valueOr(v *float64, def float64) *float64 {
	out := orDefault(v, def)
	return &out
}
