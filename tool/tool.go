package tool

import "encoding/json"

// Tool describes an operation exposed to external callers such as an MCP
// client.
type Tool struct {
	// Name is the unique identifier of the tool.
	Name string

	// Description explains what the tool does.
	Description string

	// Parameters is the JSON Schema of the tool's arguments.
	Parameters json.RawMessage
}

// Call is a request to run a tool.
type Call struct {
	// ID correlates the call with its result. Optional.
	ID string

	// Name is the tool to run.
	Name string

	// Arguments is the JSON-encoded argument object.
	Arguments string
}

// Result is the outcome of a Call.
type Result struct {
	// CallID echoes Call.ID.
	CallID string

	// Content is the tool output, or the error message when IsError is set.
	Content string

	// IsError reports whether the handler failed.
	IsError bool
}
