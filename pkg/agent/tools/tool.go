package tools

import (
	"context"
)

// Tool represents a capability that an agent can use during execution.
// Tools are invoked by the LLM through XML-formatted tool calls and
// return plain-text results that are fed straight back into the
// conversation.
//
// Example tool call format from LLM:
//
//	<tool>
//	<tool_name>browser_navigate</tool_name>
//	<arguments>
//	  <url>https://example.com</url>
//	</arguments>
//	</tool>
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "browser_navigate")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given XML arguments and returns a result string.
	// The arguments are unmarshaled from XML into the tool's argument struct.
	// Returns: (result string, metadata map, error)
	// Metadata is optional and can be nil - it will be included in tool result events
	Execute(ctx context.Context, argumentsXML []byte) (string, map[string]interface{}, error)

	// IsLoopBreaking indicates whether this tool should terminate the agent loop
	IsLoopBreaking() bool
}

// BaseToolSchema creates a common JSON schema structure for a tool
// with the given properties and required fields
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
