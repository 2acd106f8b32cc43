package storage

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the native collection file.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["requests"],
  "properties": {
    "version": {"type": "string"},
    "requests": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "method", "url"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "method": {"type": "string"},
          "url": {"type": "string"},
          "headers": {
            "type": ["object", "null"],
            "additionalProperties": {"type": "string"}
          },
          "body": {"type": ["string", "null"]},
          "timestamp": {"type": "string"},
          "collection": {"type": "string"}
        }
      }
    },
    "collections": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "requests": {"type": ["array", "null"], "items": {"type": "string"}},
          "color": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})
	return schema, schemaErr
}

// ValidateDocument checks raw JSON against the native document schema and
// returns one message per violation. A nil slice means the document is valid.
func ValidateDocument(data []byte) ([]string, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}
