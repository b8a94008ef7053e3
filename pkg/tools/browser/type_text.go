package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// TypeTool types text into an input by ref, optionally submitting with
// Enter.
type TypeTool struct {
	session *Session
}

// NewTypeTool creates a new type tool.
func NewTypeTool(session *Session) *TypeTool {
	return &TypeTool{session: session}
}

// Name returns the tool name.
func (t *TypeTool) Name() string {
	return "browser_type"
}

// Description returns the tool description.
func (t *TypeTool) Description() string {
	return "Type text into an input/textarea by ref from browser_snapshot. " +
		"Set submit=true to press Enter after typing."
}

// Schema returns the tool's JSON schema.
func (t *TypeTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"ref": map[string]interface{}{
				"type":        "integer",
				"description": "Ref number from browser_snapshot",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to type",
			},
			"submit": map[string]interface{}{
				"type":        "boolean",
				"description": "Press Enter after typing (default false)",
			},
		},
		[]string{"ref", "text"},
	)
}

// TypeInput defines the type parameters.
type TypeInput struct {
	XMLName xml.Name `xml:"arguments"`
	Ref     int      `xml:"ref"`
	Text    string   `xml:"text"`
	Submit  bool     `xml:"submit"`
}

// Execute clears the field bearing the ref marker, types the text key
// by key, and optionally presses Enter.
func (t *TypeTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input TypeInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if input.Ref < 1 {
		return fmt.Sprintf("Error: ref must be a positive snapshot ref, got %d", input.Ref), nil, nil
	}

	page, err := t.session.GetPage()
	if err != nil {
		return errorText(err), nil, nil
	}

	if err := page.TypeRef(input.Ref, input.Text, input.Submit); err != nil {
		t.session.log.Errorf("browser_type ref=%d: %v", input.Ref, err)
		return errorText(err), nil, nil
	}

	if input.Submit {
		return fmt.Sprintf("Typed into ref %d and pressed Enter.", input.Ref), nil, nil
	}
	return fmt.Sprintf("Typed into ref %d.", input.Ref), nil, nil
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *TypeTool) IsLoopBreaking() bool {
	return false
}
