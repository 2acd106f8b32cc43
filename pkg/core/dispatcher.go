package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-logr/logr"
)

// ErrUnknownTool is returned when a call names a tool that isn't registered.
var ErrUnknownTool = errors.New("unknown tool")

// Dispatcher routes named calls to registered tools.
type Dispatcher struct {
	mu    sync.RWMutex
	tools map[string]Tool
	log   logr.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log logr.Logger) *Dispatcher {
	return &Dispatcher{
		tools: make(map[string]Tool),
		log:   log,
	}
}

// RegisterTool adds a tool, replacing any tool with the same name.
func (d *Dispatcher) RegisterTool(tool Tool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tools[tool.Name()] = tool
}

// Tools lists the registered tools sorted by name.
func (d *Dispatcher) Tools() []ToolInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]ToolInfo, 0, len(d.tools))
	for _, t := range d.tools {
		out = append(out, ToolInfo{Name: t.Name(), Description: t.Description(), Parameters: t.Parameters()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call executes the named tool with JSON arguments.
func (d *Dispatcher) Call(name, args string) (string, error) {
	d.mu.RLock()
	tool, ok := d.tools[name]
	d.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if args == "" {
		args = "{}"
	}
	d.log.V(1).Info("calling tool", "tool", name)
	result, err := tool.Execute(args)
	if err != nil {
		d.log.V(1).Info("tool failed", "tool", name, "error", err.Error())
		return "", err
	}
	return result, nil
}
