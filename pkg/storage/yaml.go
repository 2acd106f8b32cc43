package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsYAMLPath reports whether the path has a .yaml or .yml extension.
func IsYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// MarshalYAML serializes a document as YAML.
func MarshalYAML(doc *Document) ([]byte, error) {
	out := doc.Clone()
	out.normalize()

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal collection: %w", err)
	}
	return data, nil
}

// UnmarshalYAML parses a document from YAML.
func UnmarshalYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	doc.normalize()
	return &doc, nil
}
