package postman

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/blackcoderx/reswob/pkg/storage"
)

const sampleCollection = `{
  "info": {
    "_postman_id": "12345678-abcd-1234-abcd-123456789012",
    "name": "Test Collection",
    "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json",
    "description": "A test collection"
  },
  "item": [
    {
      "name": "GET Request",
      "request": {
        "method": "GET",
        "header": [
          {"key": "Content-Type", "value": "application/json"},
          {"key": "Authorization", "value": "Bearer token123", "disabled": false},
          {"key": "Disabled-Header", "value": "should-not-appear", "disabled": true}
        ],
        "url": "https://api.example.com/users"
      }
    },
    {
      "name": "POST Request",
      "request": {
        "method": "POST",
        "header": [{"key": "Content-Type", "value": "application/json"}],
        "body": {"mode": "raw", "raw": "{\"name\": \"John Doe\", \"email\": \"john@example.com\"}"},
        "url": {
          "raw": "https://api.example.com/users",
          "protocol": "https",
          "host": ["api", "example", "com"],
          "path": ["users"]
        }
      }
    }
  ]
}`

func testConverter() *Converter {
	return &Converter{
		Name:  DefaultCollectionName,
		Now:   func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
		NewID: func() string { return "00000000-0000-4000-8000-000000000000" },
	}
}

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("invalid test JSON: %v", err)
	}
	return v
}

func TestIsCollection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "sample", input: sampleCollection, want: true},
		{name: "null", input: `null`},
		{name: "empty object", input: `{}`},
		{name: "empty info", input: `{"info": {}}`},
		{name: "name only", input: `{"info": {"name": "test"}}`},
		{name: "no schema", input: `{"info": {"name": "test"}, "item": []}`},
		{name: "postman.com schema", input: `{"info": {"name": "Test", "schema": "https://schema.postman.com/json/collection/v2.1.0/collection.json"}, "item": []}`, want: true},
		{name: "getpostman.com schema", input: `{"info": {"name": "Test", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"}, "item": []}`, want: true},
		{name: "other schema", input: `{"info": {"name": "Test", "schema": "https://example.com/schema.json"}, "item": []}`},
		{name: "item not array", input: `{"info": {"name": "Test", "schema": "https://schema.getpostman.com/x"}, "item": {}}`},
		{name: "name not string", input: `{"info": {"name": 1, "schema": "https://schema.getpostman.com/x"}, "item": []}`},
		{name: "native document", input: `{"version": "1.0.0", "requests": [], "collections": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCollection(decode(t, tt.input)); got != tt.want {
				t.Errorf("IsCollection() = %v, want %v", got, tt.want)
			}
			if got := Detect([]byte(tt.input)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect_Malformed(t *testing.T) {
	if Detect([]byte(`{"info": {`)) {
		t.Error("Detect() = true for malformed JSON")
	}
}

func TestFromCollection_Sample(t *testing.T) {
	col, err := Parse([]byte(sampleCollection))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col.Info.Description != "A test collection" {
		t.Errorf("Description = %q", col.Info.Description)
	}

	doc := testConverter().FromCollection(col)

	want := &storage.Document{
		Version: "1.0.0",
		Requests: []storage.Request{
			{
				Name:   "GET Request",
				Method: "GET",
				URL:    "https://api.example.com/users",
				Headers: map[string]string{
					"Content-Type":  "application/json",
					"Authorization": "Bearer token123",
				},
				Timestamp: "2025-01-01T00:00:00.000Z",
			},
			{
				Name:      "POST Request",
				Method:    "POST",
				URL:       "https://api.example.com/users",
				Headers:   map[string]string{"Content-Type": "application/json"},
				Body:      storage.StringPtr(`{"name": "John Doe", "email": "john@example.com"}`),
				Timestamp: "2025-01-01T00:00:00.000Z",
			},
		},
		Folders: []storage.Folder{},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("FromCollection() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCollection_Empty(t *testing.T) {
	col, err := Parse([]byte(`{"info": {"name": "Empty Collection", "schema": "` + SchemaURL + `"}, "item": []}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc := testConverter().FromCollection(col)
	if len(doc.Requests) != 0 || len(doc.Folders) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
}

func TestFromCollection_FolderFlattening(t *testing.T) {
	input := `{
  "info": {"name": "API", "schema": "` + SchemaURL + `"},
  "item": [
    {"name": "Users", "item": [
      {"name": "Get All", "request": {"method": "GET", "url": "https://api.example.com/users"}}
    ]},
    {"name": "Empty", "item": []}
  ]
}`
	col, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc := testConverter().FromCollection(col)

	if len(doc.Requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(doc.Requests))
	}
	r := doc.Requests[0]
	if r.Name != "Users - Get All" || r.Folder != "Users" {
		t.Errorf("request = %q in %q, want \"Users - Get All\" in \"Users\"", r.Name, r.Folder)
	}
	want := []storage.Folder{{Name: "Users", Members: []string{"Users - Get All"}}}
	if diff := cmp.Diff(want, doc.Folders); diff != "" {
		t.Errorf("folders mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCollection_DeepNestingUsesImmediateParent(t *testing.T) {
	input := `{
  "info": {"name": "API", "schema": "` + SchemaURL + `"},
  "item": [
    {"name": "Outer", "item": [
      {"name": "Top", "request": {"method": "GET", "url": "/top"}},
      {"name": "Inner", "item": [
        {"name": "Deep", "request": {"method": "GET", "url": "/deep"}}
      ]}
    ]}
  ]
}`
	col, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc := testConverter().FromCollection(col)

	names := doc.RequestNames()
	if diff := cmp.Diff([]string{"Outer - Top", "Inner - Deep"}, names); diff != "" {
		t.Errorf("request names mismatch (-want +got):\n%s", diff)
	}
	want := []storage.Folder{
		{Name: "Outer", Members: []string{"Outer - Top", "Inner - Deep"}},
		{Name: "Inner", Members: []string{"Inner - Deep"}},
	}
	if diff := cmp.Diff(want, doc.Folders); diff != "" {
		t.Errorf("folders mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCollection_DuplicatesFirstWins(t *testing.T) {
	input := `{
  "info": {"name": "API", "schema": "` + SchemaURL + `"},
  "item": [
    {"name": "Ping", "request": {"method": "GET", "url": "/first"}},
    {"name": "Ping", "request": {"method": "GET", "url": "/second"}},
    {"name": "F", "item": [{"name": "a", "request": {"url": "/a"}}]},
    {"name": "F", "item": [{"name": "b", "request": {"url": "/b"}}]}
  ]
}`
	col, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc := testConverter().FromCollection(col)

	ping, _ := doc.Request("Ping")
	if ping.URL != "/first" {
		t.Errorf("Ping.URL = %q, want /first", ping.URL)
	}
	if len(doc.Folders) != 1 {
		t.Fatalf("expected same-named folders to merge, got %+v", doc.Folders)
	}
	if diff := cmp.Diff([]string{"F - a", "F - b"}, doc.Folders[0].Members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
	a, _ := doc.Request("F - a")
	if a.Method != "GET" {
		t.Errorf("missing method should default to GET, got %q", a.Method)
	}
}

func TestFromCollection_BodyModes(t *testing.T) {
	input := `{
  "info": {"name": "API", "schema": "` + SchemaURL + `"},
  "item": [
    {"name": "raw", "request": {"method": "POST", "url": "/", "body": {"mode": "raw", "raw": "hello"}}},
    {"name": "form", "request": {"method": "POST", "url": "/", "body": {"mode": "formdata", "formdata": [{"key": "a", "value": "b"}]}}},
    {"name": "urlencoded", "request": {"method": "POST", "url": "/", "body": {"mode": "urlencoded"}}}
  ]
}`
	col, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc := testConverter().FromCollection(col)

	for _, r := range doc.Requests {
		switch r.Name {
		case "raw":
			if r.Body == nil || *r.Body != "hello" {
				t.Errorf("raw body = %v, want hello", r.Body)
			}
		default:
			if r.Body != nil {
				t.Errorf("%s body = %q, want none", r.Name, *r.Body)
			}
		}
	}
}

func TestParse_AlternateShapes(t *testing.T) {
	input := `{
  "info": {"name": "API", "schema": "` + SchemaURL + `", "description": {"content": "docs", "type": "text/markdown"}},
  "item": [
    {"name": "short", "request": "https://api.example.com/health"},
    {"name": "string headers", "request": {
      "method": "GET",
      "header": "Accept: application/json\n// X-Off: 1\nX-Trace: abc",
      "url": {"protocol": "https", "host": "api.example.com", "port": "8443", "path": ["v1", {"type": "string", "value": "users"}], "query": [{"key": "page", "value": "2"}, {"key": "off", "value": "1", "disabled": true}], "hash": "top"}
    }},
    {"name": "null headers", "request": {"method": "DELETE", "header": null, "url": null}}
  ]
}`
	col, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col.Info.Description != "docs" {
		t.Errorf("Description = %q, want docs", col.Info.Description)
	}

	doc := testConverter().FromCollection(col)
	tests := []struct {
		name    string
		method  string
		url     string
		headers map[string]string
	}{
		{name: "short", method: "GET", url: "https://api.example.com/health"},
		{name: "string headers", method: "GET", url: "https://api.example.com:8443/v1/users?page=2#top", headers: map[string]string{"Accept": "application/json", "X-Trace": "abc"}},
		{name: "null headers", method: "DELETE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := doc.Request(tt.name)
			if !ok {
				t.Fatalf("request %q not converted", tt.name)
			}
			if r.Method != tt.method || r.URL != tt.url {
				t.Errorf("got %s %s, want %s %s", r.Method, r.URL, tt.method, tt.url)
			}
			if diff := cmp.Diff(tt.headers, r.Headers, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("headers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToCollection_Sample(t *testing.T) {
	doc := &storage.Document{
		Version: "1.0.0",
		Requests: []storage.Request{
			{
				Name:   "GET Request",
				Method: "GET",
				URL:    "https://api.example.com/users",
				Headers: map[string]string{
					"Content-Type":  "application/json",
					"Authorization": "Bearer token123",
				},
				Timestamp: "2025-01-01T00:00:00.000Z",
			},
			{
				Name:      "POST Request",
				Method:    "POST",
				URL:       "https://api.example.com/users",
				Headers:   map[string]string{"Content-Type": "application/json"},
				Body:      storage.StringPtr(`{"name": "John Doe", "email": "john@example.com"}`),
				Timestamp: "2025-01-01T01:00:00.000Z",
			},
		},
		Folders: []storage.Folder{},
	}

	col := testConverter().ToCollection(doc)

	if col.Info.Name != "Reswob HTTP Client Collection" {
		t.Errorf("Info.Name = %q", col.Info.Name)
	}
	if col.Info.Schema != SchemaURL {
		t.Errorf("Info.Schema = %q", col.Info.Schema)
	}
	if len(col.Item) != 2 {
		t.Fatalf("expected 2 items, got %d", len(col.Item))
	}

	get := col.Item[0]
	if get.Name != "GET Request" || get.Request.Method != "GET" {
		t.Errorf("first item = %s %s", get.Name, get.Request.Method)
	}
	wantHeaders := Headers{
		{Key: "Authorization", Value: "Bearer token123"},
		{Key: "Content-Type", Value: "application/json"},
	}
	if diff := cmp.Diff(wantHeaders, get.Request.Header); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if get.Request.Body != nil {
		t.Errorf("GET body = %+v, want none", get.Request.Body)
	}

	post := col.Item[1]
	if post.Request.Body == nil || post.Request.Body.Mode != "raw" || post.Request.Body.Raw != *doc.Requests[1].Body {
		t.Errorf("POST body = %+v", post.Request.Body)
	}

	data, err := Marshal(col)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"url": "https://api.example.com/users"`) {
		t.Errorf("URL should be exported as a plain string:\n%s", out)
	}
	if strings.Contains(out, `"disabled"`) {
		t.Errorf("exported headers should not carry a disabled flag:\n%s", out)
	}
	if !Detect(data) {
		t.Error("exported collection is not detected as a Postman collection")
	}
}

func TestToCollection_GroupsByFolder(t *testing.T) {
	doc := &storage.Document{
		Version: "1.0.0",
		Requests: []storage.Request{
			{Name: "Request 3", Method: "GET", URL: "https://api.example.com/3", Headers: map[string]string{}, Folder: "Folder B"},
			{Name: "Request 1", Method: "GET", URL: "https://api.example.com/1", Headers: map[string]string{}, Folder: "Folder A"},
			{Name: "Uncategorized Request", Method: "GET", URL: "https://api.example.com/uncategorized", Headers: map[string]string{}},
			{Name: "Request 2", Method: "GET", URL: "https://api.example.com/2", Headers: map[string]string{}, Folder: "Folder A"},
		},
		// Folder and member order intentionally differ from request order.
		Folders: []storage.Folder{
			{Name: "Folder A", Members: []string{"Request 2", "Request 1"}},
			{Name: "Folder B", Members: []string{"Request 3"}},
		},
	}

	col := testConverter().ToCollection(doc)

	var got []string
	for _, it := range col.Item {
		if it.IsFolder() {
			var children []string
			for _, c := range it.Item {
				children = append(children, c.Name)
			}
			got = append(got, it.Name+"["+strings.Join(children, ",")+"]")
			continue
		}
		got = append(got, it.Name)
	}
	want := []string{
		"Uncategorized Request",
		"Folder B[Request 3]",
		"Folder A[Request 1,Request 2]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_Uncategorized(t *testing.T) {
	doc := &storage.Document{
		Version: "1.0.0",
		Requests: []storage.Request{
			{Name: "a", Method: "GET", URL: "https://api.example.com/a?x=1&y=2", Headers: map[string]string{"Accept": "*/*", "X-Id": "7"}},
			{Name: "b", Method: "PATCH", URL: "https://api.example.com/b", Headers: map[string]string{}, Body: storage.StringPtr("<xml/>")},
			{Name: "c", Method: "PUT", URL: "https://api.example.com/c", Headers: map[string]string{}, Body: storage.StringPtr("")},
		},
		Folders: []storage.Folder{},
	}

	conv := testConverter()
	data, err := Marshal(conv.ToCollection(doc))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	col, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := conv.FromCollection(col)

	ignoreTimestamp := cmpopts.IgnoreFields(storage.Request{}, "Timestamp")
	if diff := cmp.Diff(doc.Requests, got.Requests, ignoreTimestamp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConverter_GeneratesUUIDs(t *testing.T) {
	uuidRe := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	conv := NewConverter()

	id1 := conv.ToCollection(storage.NewDocument()).Info.PostmanID
	id2 := conv.ToCollection(storage.NewDocument()).Info.PostmanID
	if id1 == id2 {
		t.Errorf("expected fresh ids, got %s twice", id1)
	}
	for _, id := range []string{id1, id2} {
		if !uuidRe.MatchString(id) {
			t.Errorf("%q is not a v4 UUID", id)
		}
	}
}
