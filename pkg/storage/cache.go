package storage

import (
	"sync"
	"time"
)

// Cache holds the last document read from or written to disk, keyed by the
// file path and its modification time. Documents are copied on the way in
// and on the way out so callers never alias cached state.
type Cache struct {
	mu      sync.Mutex
	path    string
	modTime time.Time
	doc     *Document
}

// Get returns the cached document if it was recorded for the same path and
// modification time.
func (c *Cache) Get(path string, modTime time.Time) (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil || c.path != path || !c.modTime.Equal(modTime) {
		return nil, false
	}
	return c.doc.Clone(), true
}

// Put records doc as the content of path at modTime.
func (c *Cache) Put(path string, modTime time.Time, doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.path = path
	c.modTime = modTime
	c.doc = doc.Clone()
}

// Invalidate drops the cached document.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.path = ""
	c.modTime = time.Time{}
	c.doc = nil
}
