package postman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// DefaultCollectionName is the root name of exported collections.
const DefaultCollectionName = "Reswob HTTP Client Collection"

// Converter maps between the native document and Postman collections.
type Converter struct {
	Name  string           // Root name written on export
	Now   func() time.Time // Clock for imported request timestamps
	NewID func() string    // Generates info._postman_id on export
}

// NewConverter returns a converter with the default root name, the system
// clock and random UUIDs.
func NewConverter() *Converter {
	return &Converter{
		Name:  DefaultCollectionName,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Parse decodes a Postman collection.
func Parse(data []byte) (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse postman collection: %w", err)
	}
	return &c, nil
}

// Marshal encodes a collection as indented JSON.
func Marshal(c *Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal postman collection: %w", err)
	}
	return buf.Bytes(), nil
}

// FromCollection flattens the item tree into a native document.
//
// Leaves become requests. A leaf inside a folder is named
// "<folder> - <item>" using its immediate parent only, so deeper nesting
// loses the outer names. Folder nodes become folders whose members are every
// leaf produced beneath them; folders that end up empty are dropped.
// Same-named folders are merged and the first leaf with a given name wins.
func (c *Converter) FromCollection(col *Collection) *storage.Document {
	w := &walker{
		doc:     storage.NewDocument(),
		seen:    make(map[string]bool),
		folders: make(map[string]int),
		stamp:   c.now().UTC().Format(storage.TimestampLayout),
	}
	if col != nil {
		w.walk(col.Item, "")
	}

	w.doc.Folders = slices.DeleteFunc(w.doc.Folders, func(f storage.Folder) bool {
		return len(f.Members) == 0
	})
	return w.doc
}

type walker struct {
	doc     *storage.Document
	seen    map[string]bool // request names already produced
	folders map[string]int  // folder name -> index in doc.Folders
	stamp   string
}

// walk converts items under parent and returns the names of every request
// produced beneath them.
func (w *walker) walk(items []Item, parent string) []string {
	var produced []string
	for _, it := range items {
		if !it.IsFolder() {
			name := it.Name
			if parent != "" {
				name = parent + " - " + it.Name
			}
			if w.seen[name] {
				continue
			}
			w.seen[name] = true
			w.doc.Requests = append(w.doc.Requests, w.leaf(name, parent, it.Request))
			produced = append(produced, name)
			continue
		}

		fi, ok := w.folders[it.Name]
		if !ok {
			fi = len(w.doc.Folders)
			w.folders[it.Name] = fi
			w.doc.Folders = append(w.doc.Folders, storage.Folder{Name: it.Name, Members: []string{}})
		}
		members := w.walk(it.Item, it.Name)
		for _, m := range members {
			if !slices.Contains(w.doc.Folders[fi].Members, m) {
				w.doc.Folders[fi].Members = append(w.doc.Folders[fi].Members, m)
			}
		}
		produced = append(produced, members...)
	}
	return produced
}

func (w *walker) leaf(name, folder string, r *Request) storage.Request {
	out := storage.Request{
		Name:      name,
		Method:    r.Method,
		URL:       r.URL.String(),
		Headers:   make(map[string]string, len(r.Header)),
		Timestamp: w.stamp,
		Folder:    folder,
	}
	if out.Method == "" {
		out.Method = "GET"
	}
	for _, h := range r.Header {
		if h.Disabled || h.Key == "" {
			continue
		}
		out.Headers[h.Key] = h.Value
	}
	if r.Body != nil && r.Body.Mode == "raw" {
		out.Body = storage.StringPtr(r.Body.Raw)
	}
	return out
}

// ToCollection builds a Postman tree from doc. Uncategorized requests come
// first at the root in document order. Each folder becomes one node, ordered
// by the first request that references it, holding its requests in document
// order rather than the folder's member order.
func (c *Converter) ToCollection(doc *storage.Document) *Collection {
	col := &Collection{
		Info: Info{
			PostmanID: c.newID(),
			Name:      c.name(),
			Schema:    SchemaURL,
		},
		Item: []Item{},
	}
	if doc == nil {
		return col
	}

	var order []string
	groups := make(map[string][]Item)
	for _, r := range doc.Requests {
		item := toItem(r)
		if r.Folder == "" {
			col.Item = append(col.Item, item)
			continue
		}
		if _, ok := groups[r.Folder]; !ok {
			order = append(order, r.Folder)
		}
		groups[r.Folder] = append(groups[r.Folder], item)
	}
	for _, name := range order {
		col.Item = append(col.Item, Item{Name: name, Item: groups[name]})
	}
	return col
}

func toItem(r storage.Request) Item {
	keys := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	header := make(Headers, 0, len(keys))
	for _, k := range keys {
		header = append(header, Header{Key: k, Value: r.Headers[k]})
	}

	req := &Request{
		Method: r.Method,
		Header: header,
		URL:    URL{Raw: r.URL},
	}
	if r.Body != nil {
		req.Body = &Body{Mode: "raw", Raw: *r.Body}
	}
	return Item{Name: r.Name, Request: req}
}

func (c *Converter) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Converter) newID() string {
	if c.NewID == nil {
		return uuid.NewString()
	}
	return c.NewID()
}

func (c *Converter) name() string {
	if c.Name == "" {
		return DefaultCollectionName
	}
	return c.Name
}
