package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// blankRunRegex collapses runs of three or more newlines.
var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// ContentTool reads the visible text content of the current page.
type ContentTool struct {
	session *Session
}

// NewContentTool creates a new content tool.
func NewContentTool(session *Session) *ContentTool {
	return &ContentTool{session: session}
}

// Name returns the tool name.
func (t *ContentTool) Name() string {
	return "browser_content"
}

// Description returns the tool description.
func (t *ContentTool) Description() string {
	return "Read the visible text content of the current page (headings, paragraphs, tables, " +
		"error messages). Use after browser_navigate or browser_click to understand the page. " +
		"Set format=html for cleaned HTML instead of plain text."
}

// Schema returns the tool's JSON schema.
func (t *ContentTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector to scope content (default: body). E.g. 'main', '#content'",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Output format: 'text' (default) or 'html' (scripts and styles stripped)",
			},
		},
		nil,
	)
}

// ContentInput defines the content parameters.
type ContentInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Selector string   `xml:"selector"`
	Format   string   `xml:"format"`
}

// Execute reads page content, collapses blank-line runs, and truncates
// at the fixed character budget with a marker showing the original
// length.
func (t *ContentTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input ContentInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	format := strings.TrimSpace(input.Format)
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "html" {
		return fmt.Sprintf("Error: unsupported format '%s' (use 'text' or 'html')", format), nil, nil
	}

	page, err := t.session.GetPage()
	if err != nil {
		return errorText(err), nil, nil
	}

	if format == "html" {
		raw, err := page.HTML()
		if err != nil {
			t.session.log.Errorf("browser_content: %v", err)
			return errorText(err), nil, nil
		}
		cleaned, err := cleanHTML(raw, ContentMaxChars)
		if err != nil {
			return errorText(err), nil, nil
		}
		if cleaned == "" {
			return "(no text content)", nil, nil
		}
		return cleaned, nil, nil
	}

	selector := strings.TrimSpace(input.Selector)
	if selector == "" {
		selector = "body"
	}

	raw, err := page.InnerText(selector)
	if err != nil {
		t.session.log.Errorf("browser_content: %v", err)
		return errorText(err), nil, nil
	}

	text := truncateContent(blankRunRegex.ReplaceAllString(strings.TrimSpace(raw), "\n\n"))
	if text == "" {
		return "(no text content)", nil, nil
	}
	return text, nil, nil
}

// truncateContent enforces the fixed character budget, annotating cut
// content with its original length.
func truncateContent(text string) string {
	return truncateAt(text, ContentMaxChars)
}

// truncateAt cuts text after max characters, never mid-rune, and
// annotates the cut with the original character count.
func truncateAt(text string, max int) string {
	if len(text) <= max {
		return text
	}

	runes := 0
	cut := len(text)
	for i := range text {
		if runes == max {
			cut = i
			break
		}
		runes++
	}
	if cut == len(text) {
		return text
	}
	return text[:cut] + fmt.Sprintf("\n\n[...truncated - %d chars total]", utf8.RuneCountInString(text))
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *ContentTool) IsLoopBreaking() bool {
	return false
}
