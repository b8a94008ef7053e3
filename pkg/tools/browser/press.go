package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// PressTool presses a keyboard key in the browser.
type PressTool struct {
	session *Session
}

// NewPressTool creates a new press tool.
func NewPressTool(session *Session) *PressTool {
	return &PressTool{session: session}
}

// Name returns the tool name.
func (t *PressTool) Name() string {
	return "browser_press"
}

// Description returns the tool description.
func (t *PressTool) Description() string {
	return "Press a key in the browser (Enter, Tab, Escape, ArrowDown, etc.)."
}

// Schema returns the tool's JSON schema.
func (t *PressTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"key": map[string]interface{}{
				"type":        "string",
				"description": "Key name (Enter, Tab, Escape, ArrowDown, etc.)",
			},
		},
		[]string{"key"},
	)
}

// PressInput defines the press parameters.
type PressInput struct {
	XMLName xml.Name `xml:"arguments"`
	Key     string   `xml:"key"`
}

// Execute sends one keyboard key to the page, defaulting to Enter when
// the key is blank.
func (t *PressTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input PressInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	key := strings.TrimSpace(input.Key)
	if key == "" {
		key = "Enter"
	}

	page, err := t.session.GetPage()
	if err != nil {
		return errorText(err), nil, nil
	}

	if err := page.PressKey(key); err != nil {
		t.session.log.Errorf("browser_press key=%q: %v", key, err)
		return errorText(err), nil, nil
	}
	return fmt.Sprintf("Pressed %q", key), nil, nil
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *PressTool) IsLoopBreaking() bool {
	return false
}
