package models

// ============================================================
// Raw preset (preset.json)
// ============================================================

type RawPreset struct {
	Info *RawInfo `json:"preset_info" validate:"required"`
	Root *RawRoot `json:"preset_root" validate:"required"`
}

// RawInfo: метаданные пресета, движок их не интерпретирует.
// Все поля обязательны; указатели отличают отсутствующее поле от нулевого значения.
type RawInfo struct {
	Version     *int    `json:"version" validate:"required"`
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Author      *string `json:"author" validate:"required"`
	Email       *string `json:"email" validate:"required"`
	Width       *int    `json:"width" validate:"required"`
	Height      *int    `json:"height" validate:"required"`
	Features    *string `json:"features" validate:"required"` // список фич через пробел
	Release     *int    `json:"release" validate:"required"`
	Locked      *bool   `json:"locked" validate:"required"`
	PFlags      *int    `json:"pflags" validate:"required"`
}

type RawRoot struct {
	BackgroundColor *string   `json:"background_color,omitempty"`
	Items           []RawItem `json:"viewgroup_items" validate:"required,dive"`

	PaddingTop    *float64 `json:"position_padding_top,omitempty"`
	PaddingRight  *float64 `json:"position_padding_right,omitempty"`
	PaddingBottom *float64 `json:"position_padding_bottom,omitempty"`
	PaddingLeft   *float64 `json:"position_padding_left,omitempty"`
}

type RawItem struct {
	Type   RawItemType     `json:"internal_type" validate:"required,oneof=OverlapLayerModule StackLayerModule ShapeModule TextModule"`
	Title  *string         `json:"internal_title,omitempty"`
	Anchor *RawAnchor      `json:"position_anchor,omitempty" validate:"omitempty,oneof=TOP TOPLEFT TOPRIGHT CENTER CENTERLEFT CENTERRIGHT BOTTOM BOTTOMLEFT BOTTOMRIGHT"`
	Paint  *string         `json:"paint_color,omitempty"`

	// только ShapeModule
	ShapeType    *RawShapeType `json:"shape_type,omitempty" validate:"omitempty,oneof=RECT CIRCLE OVAL TRIANGLE RTRIANGLE EXAGON SLICE ARC SQUIRCLE"`
	ShapeCorners *float64      `json:"shape_corners,omitempty"`
	ShapeWidth   *float64      `json:"shape_width,omitempty"`
	ShapeHeight  *float64      `json:"shape_height,omitempty"`
	ShapeAngle   *float64      `json:"shape_angle,omitempty"`

	// только TextModule
	TextExpression *string          `json:"text_expression,omitempty"`
	TextFamily     *string          `json:"text_family,omitempty"`
	TextSize       *float64         `json:"text_size,omitempty"`
	TextWidth      *float64         `json:"text_width,omitempty"`
	TextHeight     *float64         `json:"text_height,omitempty"`
	TextSizeType   *RawTextSizeType `json:"text_size_type,omitempty" validate:"omitempty,oneof=FIXED_WIDTH FIT_WIDTH FIT_TO_BOX"`

	// только OverlapLayerModule и StackLayerModule; nil и пустой список различаются
	Children *[]RawItem `json:"viewgroup_items,omitempty" validate:"omitempty,dive"`

	// только у элементов верхнего уровня
	OffsetX *float64 `json:"position_offset_x,omitempty"`
	OffsetY *float64 `json:"position_offset_y,omitempty"`

	// только у вложенных элементов
	PaddingTop    *float64 `json:"position_padding_top,omitempty"`
	PaddingRight  *float64 `json:"position_padding_right,omitempty"`
	PaddingBottom *float64 `json:"position_padding_bottom,omitempty"`
	PaddingLeft   *float64 `json:"position_padding_left,omitempty"`
}

// ============================================================
// Raw enums
// ============================================================

type RawItemType string

const (
	RawOverlap RawItemType = "OverlapLayerModule"
	RawStack   RawItemType = "StackLayerModule"
	RawShape   RawItemType = "ShapeModule"
	RawText    RawItemType = "TextModule"
)

type RawAnchor string

const (
	AnchorTop         RawAnchor = "TOP"
	AnchorTopLeft     RawAnchor = "TOPLEFT"
	AnchorTopRight    RawAnchor = "TOPRIGHT"
	AnchorCenter      RawAnchor = "CENTER"
	AnchorCenterLeft  RawAnchor = "CENTERLEFT"
	AnchorCenterRight RawAnchor = "CENTERRIGHT"
	AnchorBottom      RawAnchor = "BOTTOM"
	AnchorBottomLeft  RawAnchor = "BOTTOMLEFT"
	AnchorBottomRight RawAnchor = "BOTTOMRIGHT"
)

// RawAnchors перечисляет все допустимые значения position_anchor.
var RawAnchors = []RawAnchor{
	AnchorTop, AnchorTopLeft, AnchorTopRight,
	AnchorCenter, AnchorCenterLeft, AnchorCenterRight,
	AnchorBottom, AnchorBottomLeft, AnchorBottomRight,
}

type RawShapeType string

const (
	RawShapeRect      RawShapeType = "RECT"
	RawShapeCircle    RawShapeType = "CIRCLE"
	RawShapeOval      RawShapeType = "OVAL"
	RawShapeTriangle  RawShapeType = "TRIANGLE"
	RawShapeRTriangle RawShapeType = "RTRIANGLE"
	RawShapeExagon    RawShapeType = "EXAGON"
	RawShapeSlice     RawShapeType = "SLICE"
	RawShapeArc       RawShapeType = "ARC"
	RawShapeSquircle  RawShapeType = "SQUIRCLE"
)

var RawShapeTypes = []RawShapeType{
	RawShapeRect, RawShapeCircle, RawShapeOval, RawShapeTriangle, RawShapeRTriangle,
	RawShapeExagon, RawShapeSlice, RawShapeArc, RawShapeSquircle,
}

type RawTextSizeType string

const (
	RawTextFixedWidth RawTextSizeType = "FIXED_WIDTH"
	RawTextFitWidth   RawTextSizeType = "FIT_WIDTH"
	RawTextFitToBox   RawTextSizeType = "FIT_TO_BOX"
)

var RawTextSizeTypes = []RawTextSizeType{RawTextFixedWidth, RawTextFitWidth, RawTextFitToBox}

// ============================================================
// Helpers
// ============================================================

// Ptr возвращает указатель на копию значения (для опциональных полей).
func Ptr[T any](v T) *T {
	return &v
}

// ItemList оборачивает дочерние элементы контейнера в опциональный список.
func ItemList(items ...RawItem) *[]RawItem {
	list := make([]RawItem, 0, len(items))
	list = append(list, items...)
	return &list
}

// IsContainer сообщает, должен ли элемент этого типа иметь viewgroup_items.
func (t RawItemType) IsContainer() bool {
	return t == RawOverlap || t == RawStack
}
