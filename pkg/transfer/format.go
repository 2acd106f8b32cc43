// Package transfer imports and exports the request collection as native
// JSON, native YAML or Postman v2.1 files.
package transfer

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/blackcoderx/reswob/pkg/storage"
)

var (
	// ErrInvalidDocument is returned by strict imports of native files that
	// fail schema validation.
	ErrInvalidDocument = errors.New("invalid collection document")

	// ErrUnsupportedFormat is returned when a file is neither a Postman
	// collection nor a native document.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Format identifies a collection file format.
type Format int

const (
	FormatNative Format = iota
	FormatYAML
	FormatPostman
)

func (f Format) String() string {
	switch f {
	case FormatNative:
		return "native"
	case FormatYAML:
		return "yaml"
	case FormatPostman:
		return "postman"
	default:
		return "unknown"
	}
}

// PostmanSuffix is the conventional file suffix of Postman exports.
const PostmanSuffix = ".postman_collection.json"

// FormatForPath picks the export format from a file name. Names ending in
// .postman_collection.json or mentioning "postman" are written as Postman
// collections, .yaml/.yml as native YAML and everything else as native JSON.
func FormatForPath(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, PostmanSuffix), strings.Contains(base, "postman"):
		return FormatPostman
	case storage.IsYAMLPath(base):
		return FormatYAML
	default:
		return FormatNative
	}
}
