package browser

import (
	"context"

	"github.com/entrhq/surf/pkg/agent/tools"
)

// SaveSessionTool saves browser session cookies to disk.
type SaveSessionTool struct {
	session *Session
}

// NewSaveSessionTool creates a new save session tool.
func NewSaveSessionTool(session *Session) *SaveSessionTool {
	return &SaveSessionTool{session: session}
}

// Name returns the tool name.
func (t *SaveSessionTool) Name() string {
	return "browser_save_session"
}

// Description returns the tool description.
func (t *SaveSessionTool) Description() string {
	return "Save the current browser session (cookies, storage) to disk so it persists across restarts. " +
		"Call after logging in to a site."
}

// Schema returns the tool's JSON schema.
func (t *SaveSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute persists the storage state and reports the outcome.
func (t *SaveSessionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	ok, msg := t.session.SaveStorageState()
	if !ok {
		return "Error: " + msg, nil, nil
	}
	return msg, nil, nil
}

// IsLoopBreaking returns whether this tool breaks the agent loop.
func (t *SaveSessionTool) IsLoopBreaking() bool {
	return false
}
