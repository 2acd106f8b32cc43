package tools

import (
	"encoding/json"
	"fmt"

	"github.com/blackcoderx/reswob/pkg/storage"
	"github.com/blackcoderx/reswob/pkg/transfer"
)

type pathArgs struct {
	Path   string `json:"path"`
	DryRun bool   `json:"dry_run"`
}

func parsePathArgs(args string) (pathArgs, error) {
	var params pathArgs
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return params, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Path == "" {
		return params, fmt.Errorf("path is required")
	}
	return params, nil
}

// ExportTool writes the collection to a file
type ExportTool struct {
	svc  *transfer.Service
	root storage.RootResolver
}

func NewExportTool(svc *transfer.Service, root storage.RootResolver) *ExportTool {
	return &ExportTool{svc: svc, root: root}
}

func (t *ExportTool) Name() string { return "export_requests" }

func (t *ExportTool) Description() string {
	return "Export the collection. Files named *.postman_collection.json are written as Postman v2.1, .yaml/.yml as YAML, anything else as native JSON."
}

func (t *ExportTool) Parameters() string {
	return `{"path": "string (required) - Target file, absolute or relative to the workspace"}`
}

func (t *ExportTool) Execute(args string) (string, error) {
	params, err := parsePathArgs(args)
	if err != nil {
		return "", err
	}
	path, err := workspacePath(t.root, params.Path)
	if err != nil {
		return "", err
	}

	format, err := t.svc.ExportToFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Exported collection to %s (%s)", path, format), nil
}

// ImportTool merges a file into the collection
type ImportTool struct {
	svc  *transfer.Service
	root storage.RootResolver
}

func NewImportTool(svc *transfer.Service, root storage.RootResolver) *ImportTool {
	return &ImportTool{svc: svc, root: root}
}

func (t *ImportTool) Name() string { return "import_requests" }

func (t *ImportTool) Description() string {
	return "Import a native or Postman collection file. Requests and folders whose names already exist are skipped. With dry_run the result is previewed as a diff and nothing is saved."
}

func (t *ImportTool) Parameters() string {
	return `{"path": "string (required) - Source file, absolute or relative to the workspace", "dry_run": "boolean (optional) - Preview only"}`
}

func (t *ImportTool) Execute(args string) (string, error) {
	params, err := parsePathArgs(args)
	if err != nil {
		return "", err
	}
	path, err := workspacePath(t.root, params.Path)
	if err != nil {
		return "", err
	}

	if params.DryRun {
		preview, err := t.svc.PreviewImport(path)
		if err != nil {
			return "", err
		}
		if preview.Diff == "" {
			return preview.Report.Summary() + "\nNo changes.", nil
		}
		return preview.Report.Summary() + "\n\n" + preview.Diff, nil
	}

	report, err := t.svc.ImportFromFile(path)
	if err != nil {
		return "", err
	}
	return report.Summary(), nil
}

// InvalidateCacheTool drops the cached collection after an external edit
type InvalidateCacheTool struct {
	store *storage.Store
}

func NewInvalidateCacheTool(s *storage.Store) *InvalidateCacheTool {
	return &InvalidateCacheTool{store: s}
}

func (t *InvalidateCacheTool) Name() string { return "invalidate_cache" }

func (t *InvalidateCacheTool) Description() string {
	return "Force the next read to reload the collection file from disk."
}

func (t *InvalidateCacheTool) Parameters() string {
	return `{}`
}

func (t *InvalidateCacheTool) Execute(args string) (string, error) {
	t.store.Invalidate()
	return "Collection cache invalidated", nil
}
