package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Normalized preset
// ============================================================

type Preset struct {
	Info Info `json:"info"`
	Root Root `json:"root"`
}

// Info переносится из RawInfo без изменений.
type Info struct {
	Version     int    `json:"version"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Email       string `json:"email"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Features    string `json:"features"`
	Release     int    `json:"release"`
	Locked      bool   `json:"locked"`
	PFlags      int    `json:"pflags"`
}

// Root хранит плоский граф: items хранит только id верхнего уровня, data хранит все элементы дерева.
type Root struct {
	Items   []string `json:"items"`
	Data    Items    `json:"data"`
	Paint   Paint    `json:"paint"`
	Padding *Padding `json:"padding,omitempty"`
}

// ============================================================
// Items
// ============================================================

type ItemKind string

const (
	KindOverlap ItemKind = "OVERLAP"
	KindStack   ItemKind = "STACK"
	KindShape   ItemKind = "SHAPE"
	KindText    ItemKind = "TEXT"
)

// Item образует закрытое множество из четырех вариантов: Overlap, Stack, Shape, Text.
type Item interface {
	Kind() ItemKind
	ItemID() string
	isItem()
}

type Overlap struct {
	Items   []string `json:"items"`
	ID      string   `json:"id"`
	Title   *string  `json:"title,omitempty"`
	IsRoot  bool     `json:"isRoot,omitempty"`
	Anchor  *Anchor  `json:"anchor,omitempty"`
	Offset  *Offset  `json:"offset,omitempty"`
	Padding *Padding `json:"padding,omitempty"`
}

type Stack struct {
	Items   []string `json:"items"`
	ID      string   `json:"id"`
	Title   *string  `json:"title,omitempty"`
	IsRoot  bool     `json:"isRoot,omitempty"`
	Anchor  *Anchor  `json:"anchor,omitempty"`
	Offset  *Offset  `json:"offset,omitempty"`
	Padding *Padding `json:"padding,omitempty"`
}

type Shape struct {
	Data    ShapeData `json:"data"`
	Paint   Paint     `json:"paint"`
	ID      string    `json:"id"`
	Title   *string   `json:"title,omitempty"`
	IsRoot  bool      `json:"isRoot,omitempty"`
	Anchor  Anchor    `json:"anchor"`
	Offset  Offset    `json:"offset"`
	Padding Padding   `json:"padding"`
}

type Text struct {
	Data    TextData `json:"data"`
	Paint   Paint    `json:"paint"`
	ID      string   `json:"id"`
	Title   *string  `json:"title,omitempty"`
	IsRoot  bool     `json:"isRoot,omitempty"`
	Anchor  Anchor   `json:"anchor"`
	Offset  Offset   `json:"offset"`
	Padding Padding  `json:"padding"`
}

func (*Overlap) Kind() ItemKind { return KindOverlap }
func (*Stack) Kind() ItemKind   { return KindStack }
func (*Shape) Kind() ItemKind   { return KindShape }
func (*Text) Kind() ItemKind    { return KindText }

func (o *Overlap) ItemID() string { return o.ID }
func (s *Stack) ItemID() string   { return s.ID }
func (s *Shape) ItemID() string   { return s.ID }
func (t *Text) ItemID() string    { return t.ID }

func (*Overlap) isItem() {}
func (*Stack) isItem()   {}
func (*Shape) isItem()   {}
func (*Text) isItem()    {}

// ============================================================
// Positioning
// ============================================================

type AnchorType string

const (
	AnchorStart  AnchorType = "START"
	AnchorMiddle AnchorType = "CENTER"
	AnchorEnd    AnchorType = "END"
)

type Anchor struct {
	H AnchorType `json:"h"`
	V AnchorType `json:"v"`
}

type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Paint: цвет в формате #AARRGGBB, без проверки корректности.
type Paint struct {
	Color string `json:"color"`
}

// ============================================================
// Leaf payloads
// ============================================================

type ShapeType string

const (
	ShapeSquare        ShapeType = "SQUARE"
	ShapeRectangle     ShapeType = "RECTANGLE"
	ShapeCircle        ShapeType = "CIRCLE"
	ShapeOval          ShapeType = "OVAL"
	ShapeTriangle      ShapeType = "TRIANGLE"
	ShapeRightTriangle ShapeType = "RIGHT_TRIANGLE"
	ShapeHexagon       ShapeType = "HEXAGON"
	ShapeSlice         ShapeType = "SLICE"
	ShapeArc           ShapeType = "ARC"
	ShapeSquircle      ShapeType = "SQUIRCLE"
)

type ShapeData struct {
	Type    ShapeType `json:"type"`
	Width   float64   `json:"width"`
	Height  *float64  `json:"height,omitempty"`
	Angle   *float64  `json:"angle,omitempty"`
	Corners *float64  `json:"corners,omitempty"`
}

type TextType string

const (
	TextFixedFontHeight TextType = "FIXED_FONT_HEIGHT"
	TextFixedWidth      TextType = "FIXED_WIDTH"
	TextFitWidth        TextType = "FIT_WIDTH"
	TextFitToBox        TextType = "FIT_TO_BOX"
)

type TextData struct {
	Type    TextType `json:"type"`
	Content string   `json:"content"`
	Family  *string  `json:"family,omitempty"`
	Size    *float64 `json:"size,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}

// ============================================================
// JSON: дискриминатор type
// ============================================================

func (o *Overlap) MarshalJSON() ([]byte, error) {
	type alias Overlap
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindOverlap, (*alias)(o)})
}

func (s *Stack) MarshalJSON() ([]byte, error) {
	type alias Stack
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindStack, (*alias)(s)})
}

func (s *Shape) MarshalJSON() ([]byte, error) {
	type alias Shape
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindShape, (*alias)(s)})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type ItemKind `json:"type"`
		*alias
	}{KindText, (*alias)(t)})
}

// Items: отображение id -> элемент для всех глубин дерева.
type Items map[string]Item

// UnmarshalJSON восстанавливает конкретные варианты по полю type.
func (m *Items) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Items, len(raw))
	for id, msg := range raw {
		item, err := DecodeItem(msg)
		if err != nil {
			return fmt.Errorf("item %q: %w", id, err)
		}
		out[id] = item
	}
	*m = out
	return nil
}

// DecodeItem декодирует один элемент по его дискриминатору.
func DecodeItem(msg []byte) (Item, error) {
	var head struct {
		Type ItemKind `json:"type"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, err
	}

	var item Item
	switch head.Type {
	case KindOverlap:
		item = &Overlap{}
	case KindStack:
		item = &Stack{}
	case KindShape:
		item = &Shape{}
	case KindText:
		item = &Text{}
	default:
		return nil, fmt.Errorf("unknown item type %q", head.Type)
	}

	if err := json.Unmarshal(msg, item); err != nil {
		return nil, err
	}
	return item, nil
}
