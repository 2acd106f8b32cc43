// Package core wires the workspace together: configuration, logging, the
// workspace folder and the tool dispatcher the editor shell talks to.
package core

// Tool is an operation exposed to the editor shell.
// Each tool has a name, description, parameters schema, and execution logic.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string
	// Description returns a human-readable description of what this tool does.
	Description() string
	// Parameters returns a description of the JSON parameters this tool accepts.
	Parameters() string
	// Execute runs the tool with the given JSON arguments and returns the result.
	Execute(args string) (string, error)
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"`
}
