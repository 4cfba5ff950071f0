package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"klwp-gateway/internal/converter/models"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/pretty"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях об ошибках используем имена полей из preset.json
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ============================================================
// Decode
// ============================================================

// DecodePreset разбирает preset.json и проверяет обязательные поля и значения перечислений.
func DecodePreset(data []byte) (*models.RawPreset, error) {
	var preset models.RawPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	if err := ValidatePreset(&preset); err != nil {
		return nil, err
	}
	return &preset, nil
}

// ValidatePreset проверяет уже собранную сырую модель.
func ValidatePreset(preset *models.RawPreset) error {
	if preset == nil {
		return fmt.Errorf("%w: preset is nil", models.ErrMalformedDocument)
	}
	if err := validate.Struct(preset); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", models.ErrMalformedDocument, describe(verrs))
		}
		return fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Namespace()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s: unknown value %v", fe.Namespace(), fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// ============================================================
// Encode
// ============================================================

// EncodePreset сериализует сырую модель обратно в preset.json.
func EncodePreset(preset *models.RawPreset) ([]byte, error) {
	if preset == nil {
		return nil, fmt.Errorf("%w: preset is nil", models.ErrMalformedDocument)
	}
	data, err := json.Marshal(preset)
	if err != nil {
		return nil, fmt.Errorf("encode preset: %w", err)
	}
	return data, nil
}

// EncodePresetIndent: то же, что EncodePreset, но с отступами.
func EncodePresetIndent(preset *models.RawPreset) ([]byte, error) {
	data, err := EncodePreset(preset)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(data, &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "  ",
		SortKeys: false,
	}), nil
}
