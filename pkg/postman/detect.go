package postman

import (
	"encoding/json"
	"strings"
)

// schemaHosts identify the Postman schema family in info.schema.
var schemaHosts = []string{"postman.com", "getpostman.com"}

// IsCollection reports whether a decoded JSON value looks like a Postman
// collection: info.name is a string, item is an array and info.schema
// points at a Postman schema. It is a structural check, not validation.
func IsCollection(v any) bool {
	root, ok := v.(map[string]any)
	if !ok {
		return false
	}
	info, ok := root["info"].(map[string]any)
	if !ok {
		return false
	}
	if _, ok := info["name"].(string); !ok {
		return false
	}
	if _, ok := root["item"].([]any); !ok {
		return false
	}
	schema, ok := info["schema"].(string)
	if !ok {
		return false
	}
	for _, host := range schemaHosts {
		if strings.Contains(schema, host) {
			return true
		}
	}
	return false
}

// Detect runs IsCollection on raw JSON. Unparseable input is not a collection.
func Detect(data []byte) bool {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return false
	}
	return IsCollection(v)
}
