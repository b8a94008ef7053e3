package browser

import (
	"github.com/entrhq/surf/pkg/agent/tools"
	"github.com/entrhq/surf/pkg/config"
)

// ToolRegistry creates the browser command surface over one shared
// session.
type ToolRegistry struct {
	session *Session
	tools   []tools.Tool
}

// NewToolRegistry creates a registry for the given session.
func NewToolRegistry(session *Session) *ToolRegistry {
	return &ToolRegistry{session: session}
}

// RegisterTools creates and returns all browser tools.
func (r *ToolRegistry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	r.tools = []tools.Tool{
		NewNavigateTool(r.session),
		NewSnapshotTool(r.session),
		NewContentTool(r.session),
		NewClickTool(r.session),
		NewTypeTool(r.session),
		NewPressTool(r.session),
		NewSaveSessionTool(r.session),
	}
	return r.tools
}

// Session returns the shared browser session.
func (r *ToolRegistry) Session() *Session {
	return r.session
}

// CreateBrowserTools creates the browser tools sharing one session,
// configured from cfg with the storage state path derived from the
// workspace when not set explicitly.
//
// Returns (nil, nil) when browser automation is disabled: the whole
// command surface degrades to unavailable rather than failing
// per-command.
func CreateBrowserTools(cfg *config.Config, workspace string) ([]tools.Tool, *Session) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	session := NewSession(SessionOptions{
		Headless:         cfg.Headless,
		TimeoutMs:        float64(cfg.TimeoutMs),
		ProxyServer:      cfg.ProxyServer,
		StorageStatePath: resolveStorageStatePath(cfg.StorageStatePath, workspace),
	})

	return NewToolRegistry(session).RegisterTools(), session
}
