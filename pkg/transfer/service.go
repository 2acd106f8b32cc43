package transfer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/go-logr/logr"
	"github.com/spf13/afero"

	"github.com/blackcoderx/reswob/pkg/postman"
	"github.com/blackcoderx/reswob/pkg/storage"
)

// Option configures a Service.
type Option func(*Service)

// WithFs sets the filesystem used for the files being imported or exported.
// It defaults to the store's filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Service) { s.fs = fs }
}

// WithConverter sets the Postman converter.
func WithConverter(c *postman.Converter) Option {
	return func(s *Service) { s.conv = c }
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithStrict makes native imports that fail schema validation an error
// instead of a logged warning.
func WithStrict(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// Service moves the collection between the store and files.
type Service struct {
	store  *storage.Store
	fs     afero.Fs
	conv   *postman.Converter
	log    logr.Logger
	strict bool
}

// NewService creates an import/export service over store.
func NewService(store *storage.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		fs:    store.Fs(),
		conv:  postman.NewConverter(),
		log:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportToFile writes the current collection to path in the format implied
// by its name and returns that format.
func (s *Service) ExportToFile(path string) (Format, error) {
	doc, err := s.store.Document()
	if err != nil {
		return FormatNative, err
	}

	format := FormatForPath(path)
	var data []byte
	switch format {
	case FormatPostman:
		data, err = postman.Marshal(s.conv.ToCollection(doc))
	case FormatYAML:
		data, err = storage.MarshalYAML(doc)
	default:
		data, err = storage.EncodeDocument(doc)
	}
	if err != nil {
		return format, err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return format, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return format, fmt.Errorf("failed to write file: %w", err)
	}

	s.log.Info("exported collection", "path", path, "format", format.String(),
		"requests", len(doc.Requests), "folders", len(doc.Folders))
	return format, nil
}

// ImportFromFile reads path, converts it if it is a Postman collection and
// merges it into the stored collection with a single save. Names already
// present are skipped.
func (s *Service) ImportFromFile(path string) (*Report, error) {
	incoming, format, err := s.readIncoming(path)
	if err != nil {
		return nil, err
	}

	var report *Report
	err = s.store.Update(func(doc *storage.Document) error {
		report = Merge(doc, incoming)
		return nil
	})
	if err != nil {
		return nil, err
	}
	report.Format = format

	s.log.Info("imported collection", "path", path, "format", format.String(),
		"added_requests", len(report.AddedRequests), "skipped_requests", len(report.SkippedRequests),
		"added_folders", len(report.AddedFolders), "skipped_folders", len(report.SkippedFolders))
	return report, nil
}

// Preview is the result of a dry-run import.
type Preview struct {
	Report *Report
	Diff   string // Unified diff of the collection file, empty when nothing changes
}

// PreviewImport computes what ImportFromFile would do without saving.
func (s *Service) PreviewImport(path string) (*Preview, error) {
	incoming, format, err := s.readIncoming(path)
	if err != nil {
		return nil, err
	}
	current, err := s.store.Document()
	if err != nil {
		return nil, err
	}

	merged := current.Clone()
	report := Merge(merged, incoming)
	report.Format = format

	before, err := storage.EncodeDocument(current)
	if err != nil {
		return nil, err
	}
	after, err := storage.EncodeDocument(merged)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Report: report,
		Diff:   generateDiff(string(before), string(after)),
	}, nil
}

// generateDiff creates a unified diff between the current and merged documents.
func generateDiff(original, modified string) string {
	if original == modified {
		return ""
	}
	name := storage.DirName + "/" + storage.FileName
	edits := udiff.Strings(original, modified)
	unified, err := udiff.ToUnified("a/"+name, "b/"+name, original, edits, 3)
	if err != nil {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n(diff generation failed)\n", name, name)
	}
	return unified
}

// readIncoming loads and converts the file at path. YAML is chosen by
// extension; JSON content is routed by Postman detection, falling back to
// the native format.
func (s *Service) readIncoming(path string) (*storage.Document, Format, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, FormatNative, fmt.Errorf("failed to read file: %w", err)
	}

	if storage.IsYAMLPath(path) {
		doc, err := storage.UnmarshalYAML(data)
		if err != nil {
			return nil, FormatYAML, err
		}
		return doc, FormatYAML, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, FormatNative, fmt.Errorf("failed to parse file: %w", err)
	}

	if postman.IsCollection(raw) {
		col, err := postman.Parse(data)
		if err != nil {
			return nil, FormatPostman, err
		}
		return s.conv.FromCollection(col), FormatPostman, nil
	}

	if _, ok := raw.(map[string]any); !ok {
		return nil, FormatNative, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	problems, err := storage.ValidateDocument(data)
	if err != nil {
		return nil, FormatNative, err
	}
	if len(problems) > 0 {
		if s.strict {
			return nil, FormatNative, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
		}
		s.log.Info("imported file does not match the collection schema", "path", path, "problems", problems)
	}

	doc, err := storage.DecodeDocument(data)
	if err != nil {
		return nil, FormatNative, err
	}
	return doc, FormatNative, nil
}
