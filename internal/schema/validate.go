package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/agrimitra/agrimitra/internal/models"
)

// Validate checks value against s. Value may be any Go value that marshals
// to JSON, or raw JSON bytes. A nil slice means the value is valid.
func Validate(s *Schema, value any) ([]models.FieldError, error) {
	schemaLoader := gojsonschema.NewGoLoader(s.ToMap())

	var documentLoader gojsonschema.JSONLoader
	switch v := value.(type) {
	case []byte:
		documentLoader = gojsonschema.NewBytesLoader(v)
	case string:
		documentLoader = gojsonschema.NewStringLoader(v)
	default:
		documentLoader = gojsonschema.NewGoLoader(v)
	}

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]models.FieldError, 0, len(result.Errors()))
	seen := make(map[string]bool)
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				if field == "(root)" {
					field = prop
				} else {
					field = field + "." + prop
				}
			}
		}
		if field == "(root)" {
			field = ""
		}

		msg := desc.Description()
		if node := s.Lookup(field); node != nil {
			switch desc.Type() {
			case "required":
				if node.Missing != "" {
					msg = node.Missing
				}
			case "invalid_type":
			default:
				if v, ok := desc.Value().(string); ok && strings.TrimSpace(v) == "" && node.Missing != "" {
					msg = node.Missing
				} else if node.Message != "" {
					msg = node.Message
				}
			}
		}

		key := field + "\x00" + msg
		if seen[key] {
			continue
		}
		seen[key] = true
		errs = append(errs, models.FieldError{Field: field, Message: msg})
	}
	return errs, nil
}
