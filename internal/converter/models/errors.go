package models

import "errors"

var (
	// ErrMalformedContainer: архив не открывается или в нем нет preset.json.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrMalformedDocument: preset.json не разбирается или нарушает сырую схему.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrSchemaViolation: нарушение контракта схемы при нормализации.
	ErrSchemaViolation = errors.New("schema contract violation")
)
