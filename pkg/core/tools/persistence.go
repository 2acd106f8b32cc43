package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// requestJSON is the request shape exchanged with the editor shell.
type requestJSON struct {
	Name      string            `json:"name"`
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Body      *string           `json:"body,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
	Folder    string            `json:"collection,omitempty"`
}

func toRequestJSON(r storage.Request) requestJSON {
	headers := r.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	return requestJSON{
		Name:      r.Name,
		Method:    r.Method,
		URL:       r.URL,
		Headers:   headers,
		Body:      r.Body,
		Timestamp: r.Timestamp,
		Folder:    r.Folder,
	}
}

func marshalResult(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

// SaveRequestTool saves a request into the workspace collection
type SaveRequestTool struct {
	requests *storage.Requests
}

func NewSaveRequestTool(r *storage.Requests) *SaveRequestTool {
	return &SaveRequestTool{requests: r}
}

func (t *SaveRequestTool) Name() string { return "save_request" }

func (t *SaveRequestTool) Description() string {
	return "Save an HTTP request to the workspace collection. A request with the same name is replaced."
}

func (t *SaveRequestTool) Parameters() string {
	return `{
  "name": "string (required) - Unique name for the request",
  "method": "string (required) - HTTP method, stored as given",
  "url": "string (required) - Request URL",
  "headers": "object (optional) - Request headers",
  "body": "string (optional) - Raw request body",
  "collection": "string (optional) - Folder to file the request under"
}`
}

func (t *SaveRequestTool) Execute(args string) (string, error) {
	var params requestJSON
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if params.Method == "" {
		return "", fmt.Errorf("method is required")
	}
	if params.URL == "" {
		return "", fmt.Errorf("url is required")
	}

	req := storage.Request{
		Name:    params.Name,
		Method:  params.Method,
		URL:     params.URL,
		Headers: params.Headers,
		Body:    params.Body,
		Folder:  params.Folder,
	}
	if err := t.requests.SaveRequest(req); err != nil {
		return "", err
	}

	return fmt.Sprintf("Request '%s' saved", params.Name), nil
}

// LoadRequestTool returns a saved request
type LoadRequestTool struct {
	requests *storage.Requests
}

func NewLoadRequestTool(r *storage.Requests) *LoadRequestTool {
	return &LoadRequestTool{requests: r}
}

func (t *LoadRequestTool) Name() string { return "load_request" }

func (t *LoadRequestTool) Description() string {
	return "Load a saved request by name. Returns the request as JSON."
}

func (t *LoadRequestTool) Parameters() string {
	return `{"name": "string (required) - Name of the saved request"}`
}

func (t *LoadRequestTool) Execute(args string) (string, error) {
	name, err := parseName(args)
	if err != nil {
		return "", err
	}

	req, ok, err := t.requests.GetRequest(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: request %q", storage.ErrNotFound, name)
	}
	return marshalResult(toRequestJSON(req))
}

// DeleteRequestTool removes a saved request
type DeleteRequestTool struct {
	requests *storage.Requests
}

func NewDeleteRequestTool(r *storage.Requests) *DeleteRequestTool {
	return &DeleteRequestTool{requests: r}
}

func (t *DeleteRequestTool) Name() string { return "delete_request" }

func (t *DeleteRequestTool) Description() string {
	return "Delete a saved request by name and remove it from its folder."
}

func (t *DeleteRequestTool) Parameters() string {
	return `{"name": "string (required) - Name of the saved request"}`
}

func (t *DeleteRequestTool) Execute(args string) (string, error) {
	name, err := parseName(args)
	if err != nil {
		return "", err
	}
	if err := t.requests.DeleteRequest(name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Request '%s' deleted", name), nil
}

// RenameRequestTool renames a saved request
type RenameRequestTool struct {
	requests *storage.Requests
}

func NewRenameRequestTool(r *storage.Requests) *RenameRequestTool {
	return &RenameRequestTool{requests: r}
}

func (t *RenameRequestTool) Name() string { return "rename_request" }

func (t *RenameRequestTool) Description() string {
	return "Rename a saved request. Fails if the new name is already taken."
}

func (t *RenameRequestTool) Parameters() string {
	return `{"name": "string (required) - Current name", "new_name": "string (required) - New name"}`
}

func (t *RenameRequestTool) Execute(args string) (string, error) {
	var params struct {
		Name    string `json:"name"`
		NewName string `json:"new_name"`
	}
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Name == "" || params.NewName == "" {
		return "", fmt.Errorf("name and new_name are required")
	}

	if err := t.requests.RenameRequest(params.Name, params.NewName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Request '%s' renamed to '%s'", params.Name, params.NewName), nil
}

// ListRequestsTool lists all saved requests
type ListRequestsTool struct {
	requests *storage.Requests
}

func NewListRequestsTool(r *storage.Requests) *ListRequestsTool {
	return &ListRequestsTool{requests: r}
}

func (t *ListRequestsTool) Name() string { return "list_requests" }

func (t *ListRequestsTool) Description() string {
	return "List saved requests in insertion order. Set detailed to return full requests instead of names."
}

func (t *ListRequestsTool) Parameters() string {
	return `{"detailed": "boolean (optional) - Return full requests"}`
}

func (t *ListRequestsTool) Execute(args string) (string, error) {
	var params struct {
		Detailed bool `json:"detailed"`
	}
	if strings.TrimSpace(args) != "" {
		if err := json.Unmarshal([]byte(args), &params); err != nil {
			return "", fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if !params.Detailed {
		names, err := t.requests.ListNames()
		if err != nil {
			return "", err
		}
		return marshalResult(names)
	}

	all, err := t.requests.List()
	if err != nil {
		return "", err
	}
	out := make([]requestJSON, 0, len(all))
	for _, r := range all {
		out = append(out, toRequestJSON(r))
	}
	return marshalResult(out)
}

func parseName(args string) (string, error) {
	var params struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	return params.Name, nil
}
