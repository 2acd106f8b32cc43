package transfer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"

	"github.com/blackcoderx/reswob/pkg/postman"
	"github.com/blackcoderx/reswob/pkg/storage"
)

const testRoot = "/workspace"

func newTestService(t *testing.T, opts ...Option) (*Service, *storage.Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := storage.NewStore(storage.StaticRoot(testRoot), storage.WithFs(fs))
	conv := &postman.Converter{
		Name:  postman.DefaultCollectionName,
		Now:   func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
		NewID: func() string { return "00000000-0000-4000-8000-000000000000" },
	}
	opts = append([]Option{WithConverter(conv)}, opts...)
	return NewService(store, opts...), store, fs
}

func seed(t *testing.T, store *storage.Store) {
	t.Helper()
	doc := &storage.Document{
		Version: storage.DocumentVersion,
		Requests: []storage.Request{
			{Name: "Get Users", Method: "GET", URL: "https://api.example.com/users", Headers: map[string]string{"Accept": "application/json"}, Folder: "Users"},
			{Name: "Health", Method: "GET", URL: "https://api.example.com/health", Headers: map[string]string{}},
		},
		Folders: []storage.Folder{{Name: "Users", Members: []string{"Get Users"}}},
	}
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"/tmp/api.postman_collection.json": FormatPostman,
		"/tmp/My-Postman-Export.json":      FormatPostman,
		"/tmp/requests.yaml":               FormatYAML,
		"/tmp/requests.yml":                FormatYAML,
		"/tmp/requests.json":               FormatNative,
		"/tmp/backup":                      FormatNative,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestMerge_SkipsCollisions(t *testing.T) {
	existing := &storage.Document{
		Version: "1.0.0",
		Requests: []storage.Request{
			{Name: "A", Method: "GET", URL: "/old", Headers: map[string]string{}},
		},
		Folders: []storage.Folder{{Name: "F", Members: []string{}, Color: "red"}},
	}
	incoming := &storage.Document{
		Requests: []storage.Request{
			{Name: "A", Method: "POST", URL: "/new"},
			{Name: "B", Method: "GET", URL: "/b", Folder: "F"},
			{Name: "B", Method: "GET", URL: "/b2"},
		},
		Folders: []storage.Folder{
			{Name: "F", Members: []string{"B"}, Color: "blue"},
			{Name: "G", Members: []string{"B"}},
		},
	}

	report := Merge(existing, incoming)

	a, _ := existing.Request("A")
	if a.Method != "GET" || a.URL != "/old" {
		t.Errorf("existing request changed: %+v", a)
	}
	b, _ := existing.Request("B")
	if b.URL != "/b" {
		t.Errorf("B.URL = %q, want the first occurrence", b.URL)
	}
	if diff := cmp.Diff([]string{"A", "B"}, existing.RequestNames()); diff != "" {
		t.Errorf("request names mismatch (-want +got):\n%s", diff)
	}

	f, _ := existing.Folder("F")
	if f.Color != "red" || len(f.Members) != 0 {
		t.Errorf("existing folder changed: %+v", f)
	}
	if !existing.HasFolder("G") {
		t.Error("folder G should be added")
	}

	want := &Report{
		AddedRequests:   []string{"B"},
		SkippedRequests: []string{"A", "B"},
		AddedFolders:    []string{"G"},
		SkippedFolders:  []string{"F"},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImport_NativeRoundTrip(t *testing.T) {
	svc, store, fs := newTestService(t)
	seed(t, store)

	format, err := svc.ExportToFile("/exports/backup.json")
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}
	if format != FormatNative {
		t.Errorf("format = %v, want native", format)
	}

	// Import into a fresh workspace sharing the same filesystem.
	other := storage.NewStore(storage.StaticRoot("/other"), storage.WithFs(fs))
	report, err := NewService(other).ImportFromFile("/exports/backup.json")
	if err != nil {
		t.Fatalf("ImportFromFile() error = %v", err)
	}
	if report.Format != FormatNative || len(report.AddedRequests) != 2 || len(report.AddedFolders) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}

	want, _ := store.Document()
	got, _ := other.Document()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImport_YAML(t *testing.T) {
	svc, store, fs := newTestService(t)
	seed(t, store)

	format, err := svc.ExportToFile("/exports/requests.yaml")
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}
	if format != FormatYAML {
		t.Errorf("format = %v, want yaml", format)
	}
	data, _ := afero.ReadFile(fs, "/exports/requests.yaml")
	if !strings.Contains(string(data), "collections:") {
		t.Errorf("YAML export missing collections key:\n%s", data)
	}

	other := storage.NewStore(storage.StaticRoot("/other"), storage.WithFs(fs))
	report, err := NewService(other).ImportFromFile("/exports/requests.yaml")
	if err != nil {
		t.Fatalf("ImportFromFile() error = %v", err)
	}
	if report.Format != FormatYAML || len(report.AddedRequests) != 2 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestExport_Postman(t *testing.T) {
	svc, store, fs := newTestService(t)
	seed(t, store)

	format, err := svc.ExportToFile("/exports/api.postman_collection.json")
	if err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}
	if format != FormatPostman {
		t.Errorf("format = %v, want postman", format)
	}

	data, _ := afero.ReadFile(fs, "/exports/api.postman_collection.json")
	if !postman.Detect(data) {
		t.Fatalf("export is not a Postman collection:\n%s", data)
	}
	col, err := postman.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col.Info.PostmanID != "00000000-0000-4000-8000-000000000000" {
		t.Errorf("PostmanID = %q", col.Info.PostmanID)
	}
	if len(col.Item) != 2 || col.Item[0].Name != "Health" || col.Item[1].Name != "Users" {
		t.Errorf("unexpected tree: %+v", col.Item)
	}
}

func TestImport_PostmanMergesAndSkips(t *testing.T) {
	svc, store, fs := newTestService(t)
	seed(t, store)

	writeFile(t, fs, "/in/api.json", `{
  "info": {"name": "API", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
  "item": [
    {"name": "Health", "request": {"method": "POST", "url": "https://elsewhere/health"}},
    {"name": "Users", "item": [
      {"name": "Get All", "request": {"method": "GET", "url": "https://api.example.com/users", "header": [{"key": "X-Off", "value": "1", "disabled": true}]}}
    ]}
  ]
}`)

	report, err := svc.ImportFromFile("/in/api.json")
	if err != nil {
		t.Fatalf("ImportFromFile() error = %v", err)
	}
	if report.Format != FormatPostman {
		t.Errorf("format = %v, want postman", report.Format)
	}
	if diff := cmp.Diff([]string{"Users - Get All"}, report.AddedRequests); diff != "" {
		t.Errorf("added requests mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Health"}, report.SkippedRequests); diff != "" {
		t.Errorf("skipped requests mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Users"}, report.SkippedFolders); diff != "" {
		t.Errorf("skipped folders mismatch (-want +got):\n%s", diff)
	}

	doc, _ := store.Document()
	health, _ := doc.Request("Health")
	if health.Method != "GET" || health.URL != "https://api.example.com/health" {
		t.Errorf("existing request changed: %+v", health)
	}
	imported, ok := doc.Request("Users - Get All")
	if !ok {
		t.Fatal("imported request missing")
	}
	if diff := cmp.Diff(map[string]string{}, imported.Headers, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("disabled header leaked (-want +got):\n%s", diff)
	}
	// The existing folder is kept as is, the merge does not reconcile members.
	users, _ := doc.Folder("Users")
	if diff := cmp.Diff([]string{"Get Users"}, users.Members); diff != "" {
		t.Errorf("Users members mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_MalformedPostmanDegradesToNative(t *testing.T) {
	svc, store, fs := newTestService(t)
	seed(t, store)

	// No schema URL, so detection fails and the file is read as a native document.
	writeFile(t, fs, "/in/broken.json", `{
  "info": {"name": "API"},
  "item": [{"name": "Lost", "request": {"method": "GET", "url": "https://api.example.com/lost"}}]
}`)

	report, err := svc.ImportFromFile("/in/broken.json")
	if err != nil {
		t.Fatalf("ImportFromFile() error = %v", err)
	}
	if report.Format != FormatNative {
		t.Errorf("format = %v, want native", report.Format)
	}
	if len(report.AddedRequests) != 0 {
		t.Errorf("expected nothing to be imported, got %v", report.AddedRequests)
	}

	doc, _ := store.Document()
	if doc.HasRequest("Lost") || len(doc.Requests) != 2 {
		t.Errorf("collection changed: %v", doc.RequestNames())
	}

	strict, strictStore, strictFs := newTestService(t, WithStrict(true))
	seed(t, strictStore)
	data, _ := afero.ReadFile(fs, "/in/broken.json")
	writeFile(t, strictFs, "/in/broken.json", string(data))
	if _, err := strict.ImportFromFile("/in/broken.json"); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("strict ImportFromFile() error = %v, want ErrInvalidDocument", err)
	}
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed json", content: `{"requests": [`},
		{name: "top-level array", content: `[1, 2, 3]`, wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, fs := newTestService(t)
			seed(t, store)
			writeFile(t, fs, "/in/file.json", tt.content)

			_, err := svc.ImportFromFile("/in/file.json")
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}

			doc, _ := store.Document()
			if len(doc.Requests) != 2 {
				t.Errorf("failed import changed the collection: %v", doc.RequestNames())
			}
		})
	}

	svc, _, _ := newTestService(t)
	if _, err := svc.ImportFromFile("/in/missing.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPreviewImport_DoesNotSave(t *testing.T) {
	svc, store, fs := newTestService(t)
	seed(t, store)

	writeFile(t, fs, "/in/more.json", `{"version": "1.0.0", "requests": [
  {"name": "Health", "method": "GET", "url": "https://x/health", "headers": {}, "timestamp": ""},
  {"name": "Metrics", "method": "GET", "url": "https://api.example.com/metrics", "headers": {}, "timestamp": ""}
]}`)

	before, _ := afero.ReadFile(fs, testRoot+"/"+storage.DirName+"/"+storage.FileName)

	preview, err := svc.PreviewImport("/in/more.json")
	if err != nil {
		t.Fatalf("PreviewImport() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Metrics"}, preview.Report.AddedRequests); diff != "" {
		t.Errorf("added requests mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(preview.Diff, `+      "name": "Metrics"`) {
		t.Errorf("diff does not show the new request:\n%s", preview.Diff)
	}
	if strings.Contains(preview.Diff, "https://x/health") {
		t.Errorf("diff shows a skipped request:\n%s", preview.Diff)
	}

	after, _ := afero.ReadFile(fs, testRoot+"/"+storage.DirName+"/"+storage.FileName)
	if string(before) != string(after) {
		t.Error("PreviewImport() modified the collection file")
	}

	// Previewing a file with nothing new yields an empty diff.
	writeFile(t, fs, "/in/same.json", `{"version": "1.0.0", "requests": []}`)
	preview, err = svc.PreviewImport("/in/same.json")
	if err != nil {
		t.Fatalf("PreviewImport() error = %v", err)
	}
	if preview.Diff != "" {
		t.Errorf("expected empty diff, got:\n%s", preview.Diff)
	}
}

func TestReportSummary(t *testing.T) {
	r := &Report{Format: FormatPostman, AddedRequests: []string{"a", "b"}, SkippedFolders: []string{"F"}}
	want := "Imported 2 request(s) and 0 folder(s) from postman file, skipped 1 existing name(s)"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
