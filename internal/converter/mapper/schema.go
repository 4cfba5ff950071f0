package mapper

import (
	"encoding/json"
	"fmt"
	"reflect"

	"klwp-gateway/internal/converter/models"

	"github.com/invopop/jsonschema"
)

var itemsType = reflect.TypeOf(models.Items{})

// variants: варианты элемента и значение дискриминатора type для каждого.
var variants = []struct {
	name  string
	kind  models.ItemKind
	value any
}{
	{"Overlap", models.KindOverlap, &models.Overlap{}},
	{"Stack", models.KindStack, &models.Stack{}},
	{"Shape", models.KindShape, &models.Shape{}},
	{"Text", models.KindText, &models.Text{}},
}

// ============================================================
// JSON Schema
// ============================================================

// Schema описывает нормализованный пресет в виде JSON Schema для внешних потребителей.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == itemsType {
				return itemsSchema()
			}
			return nil
		},
	}

	schema := reflector.Reflect(&models.Preset{})
	schema.Title = "KLWP normalized preset"
	if schema.Definitions == nil {
		schema.Definitions = jsonschema.Definitions{}
	}

	for _, v := range variants {
		variant := reflector.Reflect(v.value)
		for name, def := range variant.Definitions {
			schema.Definitions[name] = def
		}
		if def, ok := schema.Definitions[v.name]; ok {
			def.Properties.Set("type", &jsonschema.Schema{Type: "string", Const: string(v.kind)})
			def.Required = append([]string{"type"}, def.Required...)
		}
	}

	return schema
}

// SchemaJSON: Schema в виде JSON с отступами.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// itemsSchema описывает data как объект, каждое значение которого один из четырех вариантов.
func itemsSchema() *jsonschema.Schema {
	oneOf := make([]*jsonschema.Schema, 0, len(variants))
	for _, v := range variants {
		oneOf = append(oneOf, &jsonschema.Schema{Ref: "#/$defs/" + v.name})
	}
	return &jsonschema.Schema{
		Type:                 "object",
		AdditionalProperties: &jsonschema.Schema{OneOf: oneOf},
	}
}
