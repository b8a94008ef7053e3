package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// snapshotScript runs inside the page. It selects interactive elements
// in document order, stamps each with a 1-based ref marker, and returns
// one description line per element. Refs are only valid until the next
// navigation or snapshot; the marker attribute is the sole mechanism by
// which click/type locate elements afterwards.
var snapshotScript = fmt.Sprintf(`(maxEls) => {
    const sel = 'button, a[href], input:not([type=hidden]), textarea, select, '
        + '[role=button], [role=link], [role=textbox], [role=searchbox], [contenteditable="true"]';
    const els = Array.from(document.querySelectorAll(sel)).slice(0, maxEls);
    els.forEach((el, i) => el.setAttribute('%s', String(i + 1)));
    return els.map((el, i) => {
        const ref = i + 1;
        const role = el.getAttribute('role') || el.tagName.toLowerCase();
        const name = el.getAttribute('aria-label') || el.getAttribute('placeholder') ||
            (el.tagName === 'A' ? (el.textContent || '').trim().slice(0, 50) : '') || null;
        const type = (el.getAttribute('type') || '').toLowerCase();
        let label = (type && role === 'input') ? type + ' (input)' : role;
        if (name) label += " '" + name.replace(/'/g, "\\'").slice(0, 40) + "'";
        return ref + '. ' + label;
    }).join('\n');
}`, RefAttribute)

// clampMaxElements bounds a requested element count to [1, MaxElementsLimit].
func clampMaxElements(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxElementsLimit {
		return MaxElementsLimit
	}
	return n
}

// SnapshotTool lists interactive elements on the current page with
// numbered refs.
type SnapshotTool struct {
	session *Session
}

// NewSnapshotTool creates a new snapshot tool.
func NewSnapshotTool(session *Session) *SnapshotTool {
	return &SnapshotTool{session: session}
}

// Name returns the tool name.
func (t *SnapshotTool) Name() string {
	return "browser_snapshot"
}

// Description returns the tool description.
func (t *SnapshotTool) Description() string {
	return "List interactive elements (buttons, links, inputs) on the current page with " +
		"numbered refs. Use refs with browser_click and browser_type."
}

// Schema returns the tool's JSON schema.
func (t *SnapshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"max_elements": map[string]interface{}{
				"type":        "integer",
				"description": "Max elements to list (default 50, max 200)",
			},
		},
		nil,
	)
}

// SnapshotInput defines the snapshot parameters.
type SnapshotInput struct {
	XMLName     xml.Name `xml:"arguments"`
	MaxElements *int     `xml:"max_elements"`
}

// Execute tags the page's interactive elements and returns their
// descriptions, one "<ref>. <label>" line per element.
func (t *SnapshotTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input SnapshotInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	maxElements := DefaultMaxElements
	if input.MaxElements != nil {
		maxElements = *input.MaxElements
	}

	page, err := t.session.GetPage()
	if err != nil {
		return errorText(err), nil, nil
	}

	result, err := page.Evaluate(snapshotScript, clampMaxElements(maxElements))
	if err != nil {
		return errorText(err), nil, nil
	}

	text, _ := result.(string)
	if text == "" {
		return "No interactive elements found.", nil, nil
	}
	return text, nil, nil
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *SnapshotTool) IsLoopBreaking() bool {
	return false
}
