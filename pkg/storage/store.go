// Package storage persists the workspace request collection: a single JSON
// document of named requests and folders kept under the workspace root.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"
)

const (
	// DirName is the workspace-relative directory holding the collection.
	DirName = ".reswob-requests"
	// FileName is the collection document inside DirName.
	FileName = "requests.json"
)

// RootResolver returns the current workspace root.
type RootResolver func() (string, error)

// StaticRoot returns a resolver that always yields root.
func StaticRoot(root string) RootResolver {
	return func() (string, error) { return root, nil }
}

// LoadStatus tells how a document returned by Load was obtained.
type LoadStatus int

const (
	// StatusLoaded means the document was read from disk or the cache.
	StatusLoaded LoadStatus = iota
	// StatusMissing means no collection file exists yet.
	StatusMissing
	// StatusDefaulted means the file could not be read or parsed and an
	// empty document was substituted.
	StatusDefaulted
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	case StatusDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Store.Load.
type LoadResult struct {
	Doc    *Document
	Status LoadStatus
	Err    error // Read or parse failure behind StatusDefaulted
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem backing the store.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithLocker sets the cross-process locker used by Update.
func WithLocker(l Locker) Option {
	return func(s *Store) { s.locker = l }
}

// Store owns the on-disk collection document and its cache.
type Store struct {
	fs     afero.Fs
	root   RootResolver
	log    logr.Logger
	locker Locker
	cache  *Cache

	mu sync.Mutex // serializes Update within the process
}

// NewStore creates a store rooted at whatever root resolves to.
// By default it uses the OS filesystem without cross-process locking.
func NewStore(root RootResolver, opts ...Option) *Store {
	s := &Store{
		fs:     afero.NewOsFs(),
		root:   root,
		log:    logr.Discard(),
		locker: nopLocker{},
		cache:  &Cache{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fs returns the filesystem backing the store.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Path returns the absolute path of the collection file.
func (s *Store) Path() (string, error) {
	if s.root == nil {
		return "", ErrStorageUnavailable
	}
	root, err := s.root()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if root == "" {
		return "", ErrStorageUnavailable
	}
	return filepath.Join(root, DirName, FileName), nil
}

// Load returns the current document. It only fails when no storage location
// can be resolved; a missing or unreadable file yields an empty document.
func (s *Store) Load() (LoadResult, error) {
	path, err := s.Path()
	if err != nil {
		return LoadResult{}, err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		s.cache.Invalidate()
		if errors.Is(err, os.ErrNotExist) {
			return LoadResult{Doc: NewDocument(), Status: StatusMissing}, nil
		}
		s.log.Error(err, "failed to stat collection file, using empty collection", "path", path)
		return LoadResult{Doc: NewDocument(), Status: StatusDefaulted, Err: err}, nil
	}

	if doc, ok := s.cache.Get(path, info.ModTime()); ok {
		return LoadResult{Doc: doc, Status: StatusLoaded}, nil
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.log.Error(err, "failed to read collection file, using empty collection", "path", path)
		return LoadResult{Doc: NewDocument(), Status: StatusDefaulted, Err: err}, nil
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		s.log.Error(err, "failed to parse collection file, using empty collection", "path", path)
		return LoadResult{Doc: NewDocument(), Status: StatusDefaulted, Err: err}, nil
	}

	s.cache.Put(path, info.ModTime(), doc)
	s.log.V(1).Info("loaded collection", "path", path, "requests", len(doc.Requests), "folders", len(doc.Folders))
	return LoadResult{Doc: doc, Status: StatusLoaded}, nil
}

// Document is a convenience wrapper returning only the loaded document.
func (s *Store) Document() (*Document, error) {
	res, err := s.Load()
	if err != nil {
		return nil, err
	}
	return res.Doc, nil
}

// Save replaces the collection file with doc and refreshes the cache.
// Filesystem errors are returned to the caller.
func (s *Store) Save(doc *Document) error {
	path, err := s.Path()
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	out := doc.Clone()
	out.normalize()

	data, err := EncodeDocument(out)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(s.fs, path, data); err != nil {
		s.cache.Invalidate()
		return err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		s.cache.Invalidate()
		return fmt.Errorf("failed to stat collection file: %w", err)
	}
	s.cache.Put(path, info.ModTime(), out)
	return nil
}

// Invalidate forces the next Load to read from disk.
func (s *Store) Invalidate() {
	s.cache.Invalidate()
	s.log.V(1).Info("collection cache invalidated")
}

// Update runs a load-mutate-save sequence while holding both the in-process
// mutex and the store's Locker. If fn returns an error nothing is written.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.Path()
	if err != nil {
		return err
	}

	unlock, err := s.locker.Lock(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.log.Error(err, "failed to release collection lock", "path", path)
		}
	}()

	res, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(res.Doc); err != nil {
		return err
	}
	return s.Save(res.Doc)
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a failed write never truncates the existing document.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
