package storage

import (
	"fmt"
	"time"
)

// Requests is the request repository. It keeps no state of its own beyond
// the store handle and a clock for timestamps.
type Requests struct {
	store *Store
	now   func() time.Time
}

// NewRequests creates a request repository over store.
func NewRequests(store *Store) *Requests {
	return &Requests{store: store, now: time.Now}
}

// WithClock overrides the clock used to stamp saved requests.
func (r *Requests) WithClock(now func() time.Time) *Requests {
	r.now = now
	return r
}

// SaveRequest stores req, replacing any request with the same name.
// The timestamp is set to the current time. A folder reference must name an
// existing folder; otherwise nothing is written and ErrNotFound is returned.
func (r *Requests) SaveRequest(req Request) error {
	if req.Name == "" {
		return ErrInvalidName
	}
	req = req.Clone()
	req.Timestamp = r.now().UTC().Format(TimestampLayout)

	return r.store.Update(func(doc *Document) error {
		if req.Folder != "" && !doc.HasFolder(req.Folder) {
			return fmt.Errorf("%w: folder %q", ErrNotFound, req.Folder)
		}
		doc.PutRequest(req)
		return nil
	})
}

// DeleteRequest removes the named request. Deleting a missing request is a no-op.
func (r *Requests) DeleteRequest(name string) error {
	return r.store.Update(func(doc *Document) error {
		doc.RemoveRequest(name)
		return nil
	})
}

// RenameRequest renames a request and its folder membership entries.
func (r *Requests) RenameRequest(oldName, newName string) error {
	return r.store.Update(func(doc *Document) error {
		return doc.RenameRequest(oldName, newName)
	})
}

// GetRequest looks up a request by name.
func (r *Requests) GetRequest(name string) (Request, bool, error) {
	doc, err := r.store.Document()
	if err != nil {
		return Request{}, false, err
	}
	req, ok := doc.Request(name)
	return req, ok, nil
}

// ListNames returns request names in insertion order.
func (r *Requests) ListNames() ([]string, error) {
	doc, err := r.store.Document()
	if err != nil {
		return nil, err
	}
	return doc.RequestNames(), nil
}

// List returns every stored request in insertion order.
func (r *Requests) List() ([]Request, error) {
	doc, err := r.store.Document()
	if err != nil {
		return nil, err
	}
	return doc.Requests, nil
}
