package core

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ListToolsCall is answered by the bridge itself with the registered tools.
const ListToolsCall = "list_tools"

const maxLineSize = 16 << 20

// BridgeRequest is one line read from the editor shell.
type BridgeRequest struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args,omitempty"`
}

// BridgeResponse is one line written back. Exactly one of Result and Error is set.
type BridgeResponse struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result *string         `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Bridge serves dispatcher calls as newline-delimited JSON. Calls run one at
// a time in arrival order.
type Bridge struct {
	d *Dispatcher
}

// NewBridge creates a bridge over d.
func NewBridge(d *Dispatcher) *Bridge {
	return &Bridge{d: d}
}

// Serve reads requests from r until EOF or ctx is done and writes one
// response per request to w. Cancellation returns immediately even while a
// read is blocked; the reading goroutine then ends with r.
func (b *Bridge) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}
					return fmt.Errorf("failed to read request: %w", err)
				}
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if err := enc.Encode(b.handle(line)); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

func (b *Bridge) handle(line string) BridgeResponse {
	var req BridgeRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return BridgeResponse{Error: fmt.Sprintf("invalid request: %v", err)}
	}
	resp := BridgeResponse{ID: req.ID}

	if req.Tool == ListToolsCall {
		data, err := json.Marshal(b.d.Tools())
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		s := string(data)
		resp.Result = &s
		return resp
	}

	result, err := b.d.Call(req.Tool, string(req.Args))
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Result = &result
	return resp
}
