package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// NavigateTool navigates the browser to a URL.
type NavigateTool struct {
	session *Session
}

// NewNavigateTool creates a new navigate tool.
func NewNavigateTool(session *Session) *NavigateTool {
	return &NavigateTool{session: session}
}

// Name returns the tool name.
func (t *NavigateTool) Name() string {
	return "browser_navigate"
}

// Description returns the tool description.
func (t *NavigateTool) Description() string {
	return "Navigate the browser to a URL. Use the browser for JS-rendered pages or when login is required. " +
		"Set headless=false to watch the browser window live. " +
		"After navigating, call browser_snapshot or browser_content to read the page."
}

// Schema returns the tool's JSON schema.
func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "Full URL to open (http or https only)",
			},
			"headless": map[string]interface{}{
				"type": "boolean",
				"description": "Run without visible UI (true, default) or show the browser window (false). " +
					"Persists for the session.",
			},
		},
		[]string{"url"},
	)
}

// NavigateInput defines the navigation parameters.
type NavigateInput struct {
	XMLName  xml.Name `xml:"arguments"`
	URL      string   `xml:"url"`
	Headless *bool    `xml:"headless"`
}

// Execute validates the URL, optionally reconfigures headless mode, and
// loads the page. A successful navigation kicks off a background
// storage-state save that the command does not wait for.
func (t *NavigateTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input NavigateInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if reason, ok := validateURL(input.URL); !ok {
		return fmt.Sprintf("Error: %s", reason), nil, nil
	}

	if input.Headless != nil && *input.Headless != t.session.Headless() {
		t.session.Reconfigure(*input.Headless)
	}

	page, err := t.session.GetPage()
	if err != nil {
		return errorText(err), nil, nil
	}

	if err := page.Goto(input.URL); err != nil {
		t.session.log.Errorf("browser_navigate %s: %v", input.URL, err)
		return errorText(err), nil, nil
	}
	t.session.log.Infof("browser_navigate: %s", input.URL)

	// Fire and forget: the save result only reaches the log.
	t.session.saveStorageStateDetached()

	result := fmt.Sprintf("Navigated to %s", input.URL)
	if title, err := page.Title(); err == nil && title != "" {
		result += fmt.Sprintf(" (%q)", title)
	}
	return result, nil, nil
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *NavigateTool) IsLoopBreaking() bool {
	return false
}
