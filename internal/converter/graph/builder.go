package graph

import (
	"fmt"
	"strconv"

	"klwp-gateway/internal/converter/models"
)

// ============================================================
// Graph Builder
// ============================================================

// GraphBuilder разворачивает дерево элементов пресета в плоский граф id -> элемент.
// Один экземпляр на одну нормализацию, общая карта живет только внутри него.
type GraphBuilder struct {
	data models.Items
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		data: make(models.Items),
	}
}

// Normalize: прямое преобразование корня пресета в нормализованный граф.
func Normalize(root *models.RawRoot) (*models.Root, error) {
	return NewGraphBuilder().Build(root)
}

// Build собирает корень: id верхнего уровня "0".."n-1", потомки вставляются в порядке обхода.
func (g *GraphBuilder) Build(root *models.RawRoot) (*models.Root, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: preset_root is missing", models.ErrSchemaViolation)
	}
	g.reset()

	items := make([]string, 0, len(root.Items))
	for i := range root.Items {
		id := strconv.Itoa(i)
		item, err := g.normalizeItem(&root.Items[i], id, true)
		if err != nil {
			return nil, err
		}
		items = append(items, id)
		g.data[id] = item
	}

	return &models.Root{
		Items:   items,
		Data:    g.data,
		Paint:   rootPaint(root.BackgroundColor),
		Padding: resolvePadding(root.PaddingTop, root.PaddingRight, root.PaddingBottom, root.PaddingLeft),
	}, nil
}

func (g *GraphBuilder) reset() {
	g.data = make(models.Items)
}

// ============================================================
// Dispatch
// ============================================================

// normalizeItem строит вариант по internal_type. Сам элемент не вставляется,
// это делает вызывающая сторона; вставляются только его потомки.
func (g *GraphBuilder) normalizeItem(raw *models.RawItem, id string, isRoot bool) (models.Item, error) {
	if raw.Type.IsContainer() {
		return g.normalizeGroup(raw, id, isRoot)
	}
	switch raw.Type {
	case models.RawShape:
		return normalizeShape(raw, id, isRoot)
	case models.RawText:
		return normalizeText(raw, id, isRoot)
	}
	return nil, fmt.Errorf("%w: item %s has unknown internal_type %q", models.ErrSchemaViolation, id, raw.Type)
}

// normalizeGroup собирает Overlap или Stack из общего разбора контейнера.
func (g *GraphBuilder) normalizeGroup(raw *models.RawItem, id string, isRoot bool) (models.Item, error) {
	c, err := g.normalizeContainer(raw, id, isRoot)
	if err != nil {
		return nil, err
	}
	if raw.Type == models.RawStack {
		return &models.Stack{
			Items:   c.items,
			ID:      id,
			Title:   raw.Title,
			IsRoot:  isRoot,
			Anchor:  c.anchor,
			Offset:  c.offset,
			Padding: c.padding,
		}, nil
	}
	return &models.Overlap{
		Items:   c.items,
		ID:      id,
		Title:   raw.Title,
		IsRoot:  isRoot,
		Anchor:  c.anchor,
		Offset:  c.offset,
		Padding: c.padding,
	}, nil
}

// ============================================================
// Containers
// ============================================================

type container struct {
	items   []string
	anchor  *models.Anchor
	offset  *models.Offset
	padding *models.Padding
}

func (g *GraphBuilder) normalizeContainer(raw *models.RawItem, id string, isRoot bool) (*container, error) {
	if raw.Children == nil {
		return nil, fmt.Errorf("%w: %s %s has no viewgroup_items", models.ErrSchemaViolation, raw.Type, id)
	}

	children := *raw.Children
	items := make([]string, 0, len(children))
	for i := range children {
		childID := id + "-" + strconv.Itoa(i)
		child, err := g.normalizeItem(&children[i], childID, false)
		if err != nil {
			return nil, err
		}
		items = append(items, childID)
		g.data[childID] = child
	}

	anchor, err := resolveAnchor(raw.Anchor)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", raw.Type, id, err)
	}

	return &container{
		items:   items,
		anchor:  anchor,
		offset:  resolveOffset(raw.OffsetX, raw.OffsetY),
		padding: resolvePadding(raw.PaddingTop, raw.PaddingRight, raw.PaddingBottom, raw.PaddingLeft),
	}, nil
}

// ============================================================
// Leaves
// ============================================================

type leaf struct {
	paint   models.Paint
	anchor  models.Anchor
	offset  models.Offset
	padding models.Padding
}

// resolveLeaf: у листьев позиционирование и цвет всегда заполнены.
func resolveLeaf(raw *models.RawItem, id string, isRoot bool) (*leaf, error) {
	anchor, err := leafAnchor(raw.Anchor, isRoot)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", raw.Type, id, err)
	}

	l := &leaf{
		paint:  itemPaint(raw.Paint),
		anchor: anchor,
	}
	if offset := resolveOffset(raw.OffsetX, raw.OffsetY); offset != nil {
		l.offset = *offset
	}
	if padding := resolvePadding(raw.PaddingTop, raw.PaddingRight, raw.PaddingBottom, raw.PaddingLeft); padding != nil {
		l.padding = *padding
	}
	return l, nil
}

func normalizeShape(raw *models.RawItem, id string, isRoot bool) (models.Item, error) {
	data, err := shapeData(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", raw.Type, id, err)
	}
	l, err := resolveLeaf(raw, id, isRoot)
	if err != nil {
		return nil, err
	}

	return &models.Shape{
		Data:    data,
		Paint:   l.paint,
		ID:      id,
		Title:   raw.Title,
		IsRoot:  isRoot,
		Anchor:  l.anchor,
		Offset:  l.offset,
		Padding: l.padding,
	}, nil
}

func normalizeText(raw *models.RawItem, id string, isRoot bool) (models.Item, error) {
	data, err := textData(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", raw.Type, id, err)
	}
	l, err := resolveLeaf(raw, id, isRoot)
	if err != nil {
		return nil, err
	}

	return &models.Text{
		Data:    data,
		Paint:   l.paint,
		ID:      id,
		Title:   raw.Title,
		IsRoot:  isRoot,
		Anchor:  l.anchor,
		Offset:  l.offset,
		Padding: l.padding,
	}, nil
}
