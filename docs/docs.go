package docs

import _ "embed"

// OpenAPI: описание публичного API шлюза.
//
//go:embed openapi.yaml
var OpenAPI []byte
