// Package postman reads and writes Postman Collection v2.1 documents and
// converts them to and from the native request collection.
package postman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaURL is written into every exported collection.
const SchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Collection is the root of a Postman collection file.
type Collection struct {
	Info Info   `json:"info"`
	Item []Item `json:"item"`
}

// Info holds collection metadata.
type Info struct {
	PostmanID   string      `json:"_postman_id,omitempty"`
	Name        string      `json:"name"`
	Schema      string      `json:"schema"`
	Description Description `json:"description,omitempty"`
}

// Item is either a request leaf (Request set) or a folder node (Item set).
type Item struct {
	Name    string   `json:"name"`
	Request *Request `json:"request,omitempty"`
	Item    []Item   `json:"item,omitempty"`
}

// IsFolder reports whether the item is an interior node.
func (it Item) IsFolder() bool {
	return it.Request == nil
}

// Request is the HTTP part of a leaf item.
type Request struct {
	Method      string      `json:"method"`
	Header      Headers     `json:"header"`
	Body        *Body       `json:"body,omitempty"`
	URL         URL         `json:"url"`
	Description Description `json:"description,omitempty"`
}

// UnmarshalJSON accepts the short form where the request is just a URL string.
func (r *Request) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*r = Request{Method: "GET", URL: URL{Raw: raw}}
		return nil
	}

	type plain Request
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Request(p)
	return nil
}

// Header is a single request header.
type Header struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Headers is the header list of a request. Collections in the wild carry it
// as an array of objects, a "Key: Value" block of lines, or null.
type Headers []Header

// UnmarshalJSON decodes any of the accepted header shapes.
func (h *Headers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*h = nil
		return nil
	case data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*h = parseHeaderLines(raw)
		return nil
	default:
		var list []Header
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("invalid header list: %w", err)
		}
		*h = list
		return nil
	}
}

// parseHeaderLines reads the string header form. Lines commented out with
// "//" are disabled headers.
func parseHeaderLines(raw string) Headers {
	var out Headers
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		disabled := false
		if strings.HasPrefix(line, "//") {
			disabled = true
			line = strings.TrimSpace(strings.TrimPrefix(line, "//"))
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out = append(out, Header{
			Key:      strings.TrimSpace(key),
			Value:    strings.TrimSpace(value),
			Disabled: disabled,
		})
	}
	return out
}

// Body is a request body. Only the raw mode carries data the native model keeps.
type Body struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw,omitempty"`
}

// QueryParam is one entry of a structured URL's query.
type QueryParam struct {
	Key      string  `json:"key"`
	Value    *string `json:"value"`
	Disabled bool    `json:"disabled,omitempty"`
}

// URL is a request URL. It decodes from a plain string or the structured
// object form and always encodes as a plain string.
type URL struct {
	Raw      string
	Protocol string
	Host     segments
	Port     string
	Path     segments
	Query    []QueryParam
	Hash     string
}

type urlObject struct {
	Raw      string       `json:"raw"`
	Protocol string       `json:"protocol"`
	Host     segments     `json:"host"`
	Port     string       `json:"port"`
	Path     segments     `json:"path"`
	Query    []QueryParam `json:"query"`
	Hash     string       `json:"hash"`
}

// UnmarshalJSON decodes the string or object URL form.
func (u *URL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*u = URL{}
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*u = URL{Raw: raw}
		return nil
	}

	var obj urlObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	*u = URL(obj)
	return nil
}

// MarshalJSON encodes the URL as a plain string.
func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// String returns the raw URL, rebuilding it from its parts when the raw
// field is absent.
func (u URL) String() string {
	if u.Raw != "" {
		return u.Raw
	}

	var b strings.Builder
	if u.Protocol != "" {
		b.WriteString(u.Protocol)
		b.WriteString("://")
	}
	b.WriteString(strings.Join(u.Host, "."))
	if u.Port != "" {
		b.WriteString(":")
		b.WriteString(u.Port)
	}
	if len(u.Path) > 0 {
		b.WriteString("/")
		b.WriteString(strings.Join(u.Path, "/"))
	}

	sep := "?"
	for _, q := range u.Query {
		if q.Disabled {
			continue
		}
		b.WriteString(sep)
		b.WriteString(q.Key)
		if q.Value != nil {
			b.WriteString("=")
			b.WriteString(*q.Value)
		}
		sep = "&"
	}
	if u.Hash != "" {
		b.WriteString("#")
		b.WriteString(u.Hash)
	}
	return b.String()
}

// segments is a host or path list. Postman allows a single string, an array
// of strings, or path variables as {"value": ...} objects.
type segments []string

func (s *segments) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = strings.FieldsFunc(one, func(r rune) bool { return r == '/' })
		return nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("invalid url segments: %w", err)
	}
	out := make(segments, 0, len(parts))
	for _, p := range parts {
		var str string
		if err := json.Unmarshal(p, &str); err == nil {
			out = append(out, str)
			continue
		}
		var obj struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(p, &obj); err != nil {
			return fmt.Errorf("invalid url segment: %w", err)
		}
		out = append(out, obj.Value)
	}
	*s = out
	return nil
}

// Description is free text that Postman stores either as a string or as
// {"content": ..., "type": ...}.
type Description string

func (d *Description) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Description(s)
		return nil
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}
	*d = Description(obj.Content)
	return nil
}
