package graph

import (
	"fmt"

	"klwp-gateway/internal/converter/models"
)

const (
	DefaultSize        = 20.0
	DefaultAngle       = 45.0
	DefaultTextContent = "$df(hh:mm:ss)$"
)

// ============================================================
// Shape
// ============================================================

type shapeRule struct {
	kind      models.ShapeType
	hasHeight bool
	hasAngle  bool
}

// без shape_type фигура считается квадратом: только ширина
var squareRule = shapeRule{kind: models.ShapeSquare}

var shapeRules = map[models.RawShapeType]shapeRule{
	models.RawShapeRect:      {kind: models.ShapeRectangle, hasHeight: true},
	models.RawShapeCircle:    {kind: models.ShapeCircle},
	models.RawShapeOval:      {kind: models.ShapeOval, hasHeight: true},
	models.RawShapeTriangle:  {kind: models.ShapeTriangle, hasHeight: true},
	models.RawShapeRTriangle: {kind: models.ShapeRightTriangle, hasHeight: true},
	models.RawShapeExagon:    {kind: models.ShapeHexagon, hasHeight: true},
	models.RawShapeSlice:     {kind: models.ShapeSlice, hasHeight: true, hasAngle: true},
	models.RawShapeArc:       {kind: models.ShapeArc, hasHeight: true, hasAngle: true},
	models.RawShapeSquircle:  {kind: models.ShapeSquircle, hasHeight: true},
}

func shapeData(raw *models.RawItem) (models.ShapeData, error) {
	rule := squareRule
	if raw.ShapeType != nil {
		r, ok := shapeRules[*raw.ShapeType]
		if !ok {
			return models.ShapeData{}, fmt.Errorf("%w: unknown shape_type %q", models.ErrSchemaViolation, *raw.ShapeType)
		}
		rule = r
	}

	data := models.ShapeData{
		Type:    rule.kind,
		Width:   orDefault(raw.ShapeWidth, DefaultSize),
		Corners: raw.ShapeCorners,
	}
	if rule.hasHeight {
		data.Height = valueOr(raw.ShapeHeight, DefaultSize)
	}
	if rule.hasAngle {
		data.Angle = valueOr(raw.ShapeAngle, DefaultAngle)
	}
	return data, nil
}

// ============================================================
// Text
// ============================================================

type textRule struct {
	kind      models.TextType
	hasSize   bool
	hasWidth  bool
	hasHeight bool
}

// без text_size_type высота шрифта фиксирована
var fixedFontHeightRule = textRule{kind: models.TextFixedFontHeight, hasSize: true}

var textRules = map[models.RawTextSizeType]textRule{
	models.RawTextFixedWidth: {kind: models.TextFixedWidth, hasSize: true, hasWidth: true},
	models.RawTextFitWidth:   {kind: models.TextFitWidth, hasWidth: true},
	models.RawTextFitToBox:   {kind: models.TextFitToBox, hasWidth: true, hasHeight: true},
}

func textData(raw *models.RawItem) (models.TextData, error) {
	rule := fixedFontHeightRule
	if raw.TextSizeType != nil {
		r, ok := textRules[*raw.TextSizeType]
		if !ok {
			return models.TextData{}, fmt.Errorf("%w: unknown text_size_type %q", models.ErrSchemaViolation, *raw.TextSizeType)
		}
		rule = r
	}

	data := models.TextData{
		Type:    rule.kind,
		Content: orDefault(raw.TextExpression, DefaultTextContent),
		Family:  raw.TextFamily,
	}
	if rule.hasSize {
		data.Size = valueOr(raw.TextSize, DefaultSize)
	}
	if rule.hasWidth {
		data.Width = valueOr(raw.TextWidth, DefaultSize)
	}
	if rule.hasHeight {
		data.Height = valueOr(raw.TextHeight, DefaultSize)
	}
	return data, nil
}
