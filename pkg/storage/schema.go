package storage

// DocumentVersion is written into every document created by this package.
const DocumentVersion = "1.0.0"

// TimestampLayout is the ISO-8601 layout used for request timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Request represents a saved API request.
type Request struct {
	Name      string            `json:"name" yaml:"name"`                                 // Unique name for the request
	Method    string            `json:"method" yaml:"method"`                             // HTTP method, stored verbatim
	URL       string            `json:"url" yaml:"url"`                                   // Request URL, stored verbatim
	Headers   map[string]string `json:"headers" yaml:"headers"`                           // HTTP headers
	Body      *string           `json:"body,omitempty" yaml:"body,omitempty"`             // Raw request body
	Timestamp string            `json:"timestamp" yaml:"timestamp"`                       // Creation or update time
	Folder    string            `json:"collection,omitempty" yaml:"collection,omitempty"` // Owning folder, empty when uncategorized
}

// Folder represents a named group of requests. It is persisted as a "collection".
type Folder struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"requests" yaml:"requests"`
	Color   string   `json:"color,omitempty" yaml:"color,omitempty"`
}

// Document is the root object persisted in the workspace collection file.
type Document struct {
	Version  string    `json:"version" yaml:"version"`
	Requests []Request `json:"requests" yaml:"requests"`
	Folders  []Folder  `json:"collections" yaml:"collections"`
}

// StringPtr returns a pointer to s. Handy for optional bodies.
func StringPtr(s string) *string {
	return &s
}
