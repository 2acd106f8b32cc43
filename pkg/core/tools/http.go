package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// HTTPTool sends saved or inline requests with a fixed timeout
type HTTPTool struct {
	client   *http.Client
	requests *storage.Requests
}

// NewHTTPTool creates a new HTTP tool. A non-positive timeout means 30s.
func NewHTTPTool(requests *storage.Requests, timeout time.Duration) *HTTPTool {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTool{
		client: &http.Client{
			Timeout: timeout,
		},
		requests: requests,
	}
}

// HTTPRequest represents an HTTP request
type HTTPRequest struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    *string           `json:"body,omitempty"`
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int               `json:"status_code"`
	Status     string            `json:"status"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	Duration   time.Duration     `json:"duration"`
}

// Name returns the tool name
func (t *HTTPTool) Name() string {
	return "send_request"
}

// Description returns the tool description
func (t *HTTPTool) Description() string {
	return "Send an HTTP request. Pass name to send a saved request, or method and url for an inline one."
}

// Parameters returns the tool parameter description
func (t *HTTPTool) Parameters() string {
	return `{"name": "string (optional) - Saved request to send", "method": "string", "url": "string", "headers": {"key": "value"}, "body": "string"}`
}

// Execute performs an HTTP request (implements core.Tool)
func (t *HTTPTool) Execute(args string) (string, error) {
	var params struct {
		Name string `json:"name"`
		HTTPRequest
	}
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}

	req := params.HTTPRequest
	if params.Name != "" {
		saved, err := t.Saved(params.Name)
		if err != nil {
			return "", err
		}
		req = saved
	}

	resp, err := t.Run(context.Background(), req)
	if err != nil {
		return "", err
	}
	return marshalResult(resp)
}

// Saved looks up a stored request and turns it into an HTTPRequest.
func (t *HTTPTool) Saved(name string) (HTTPRequest, error) {
	if t.requests == nil {
		return HTTPRequest{}, storage.ErrStorageUnavailable
	}
	r, ok, err := t.requests.GetRequest(name)
	if err != nil {
		return HTTPRequest{}, err
	}
	if !ok {
		return HTTPRequest{}, fmt.Errorf("%w: request %q", storage.ErrNotFound, name)
	}
	return HTTPRequest{Method: r.Method, URL: r.URL, Headers: r.Headers, Body: r.Body}, nil
}

// Run performs an HTTP request. The body is sent as is.
func (t *HTTPTool) Run(ctx context.Context, req HTTPRequest) (*HTTPResponse, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	startTime := time.Now()

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = strings.NewReader(*req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	headers := make(map[string]string)
	for key, values := range httpResp.Header {
		headers[key] = strings.Join(values, ", ")
	}

	return &HTTPResponse{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    headers,
		Body:       string(bodyBytes),
		Duration:   time.Since(startTime),
	}, nil
}

// FormatResponse formats the HTTP response as markdown for display
func (r *HTTPResponse) FormatResponse() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("**Status:** %s (%dms)\n\n", r.Status, r.Duration.Milliseconds()))

	keys := make([]string, 0, len(r.Headers))
	for key := range r.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sb.WriteString("**Headers:**\n\n")
	for _, key := range keys {
		sb.WriteString(fmt.Sprintf("- `%s`: %s\n", key, r.Headers[key]))
	}
	sb.WriteString("\n")

	// Body (try to pretty-print JSON)
	sb.WriteString("**Body:**\n\n")
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, []byte(r.Body), "", "  "); err == nil {
		sb.WriteString("```json\n")
		sb.WriteString(prettyJSON.String())
		sb.WriteString("\n```\n")
	} else {
		sb.WriteString("```\n")
		sb.WriteString(r.Body)
		sb.WriteString("\n```\n")
	}

	return sb.String()
}
