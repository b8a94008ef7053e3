package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// ClickTool clicks an element by ref from the last browser_snapshot.
type ClickTool struct {
	session *Session
}

// NewClickTool creates a new click tool.
func NewClickTool(session *Session) *ClickTool {
	return &ClickTool{session: session}
}

// Name returns the tool name.
func (t *ClickTool) Name() string {
	return "browser_click"
}

// Description returns the tool description.
func (t *ClickTool) Description() string {
	return "Click an element by ref number from browser_snapshot."
}

// Schema returns the tool's JSON schema.
func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"ref": map[string]interface{}{
				"type":        "integer",
				"description": "Ref number from browser_snapshot",
			},
		},
		[]string{"ref"},
	)
}

// ClickInput defines the click parameters.
type ClickInput struct {
	XMLName xml.Name `xml:"arguments"`
	Ref     int      `xml:"ref"`
}

// Execute clicks the first element bearing the ref marker. A stale ref
// (issued before a navigation) fails to match and comes back as an
// ordinary not-found failure; the session stays usable.
func (t *ClickTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input ClickInput
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

	if err := page.ClickRef(input.Ref); err != nil {
		t.session.log.Errorf("browser_click ref=%d: %v", input.Ref, err)
		return errorText(err), nil, nil
	}
	return fmt.Sprintf("Clicked ref %d", input.Ref), nil, nil
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *ClickTool) IsLoopBreaking() bool {
	return false
}
