package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeDocument serializes a document as indented JSON.
// HTML escaping is disabled so URLs and bodies stay readable on disk.
func EncodeDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal collection: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDocument parses a native JSON document. Documents written before
// folders existed get an empty folder list.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse collection: %w", err)
	}
	doc.normalize()
	return &doc, nil
}
