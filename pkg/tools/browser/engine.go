package browser

// The engine interfaces describe the slice of the browser-automation
// engine that surf depends on. The Playwright-backed implementation
// lives in playwright.go; tests substitute fakes. Rendering, DOM
// execution, and networking all happen on the engine's side of this
// boundary.

// Engine is a running browser-automation driver process.
type Engine interface {
	// Launch starts a browser process.
	Launch(headless bool, args []string) (EngineBrowser, error)

	// Stop shuts down the driver process.
	Stop() error
}

// EngineBrowser is a launched browser process.
type EngineBrowser interface {
	// NewContext creates an isolated browsing profile.
	NewContext(opts ContextOptions) (EngineContext, error)

	// Close terminates the browser process.
	Close() error
}

// EngineContext is an isolated browsing profile (cookies, storage, proxy)
// within one browser process.
type EngineContext interface {
	// NewPage opens a page in this context.
	NewPage() (EnginePage, error)

	// SaveStorageState serializes cookies and local storage to path.
	SaveStorageState(path string) error

	// Close disposes the context.
	Close() error
}

// EnginePage is one open page.
type EnginePage interface {
	// Goto navigates to url and waits for the load event.
	Goto(url string) error

	// Title returns the page title, best effort.
	Title() (string, error)

	// Evaluate runs script in the page and returns its result.
	Evaluate(script string, arg interface{}) (interface{}, error)

	// InnerText returns the visible text of the first element matching
	// the CSS selector.
	InnerText(selector string) (string, error)

	// HTML returns the full serialized HTML of the page.
	HTML() (string, error)

	// ClickRef clicks the first element whose ref marker equals ref.
	ClickRef(ref int) error

	// TypeRef clears the first element whose ref marker equals ref,
	// types text into it key by key, and optionally presses Enter.
	TypeRef(ref int, text string, submit bool) error

	// PressKey sends one keyboard key to the page.
	PressKey(key string) error

	// SetDefaultTimeout sets the default operation timeout in milliseconds.
	SetDefaultTimeout(ms float64)

	// Close closes the page.
	Close() error
}

// ContextOptions configures a new browsing context.
type ContextOptions struct {
	// UserAgent overrides the browser user agent string
	UserAgent string

	// Viewport fixes the page dimensions
	Viewport Viewport

	// ExtraHTTPHeaders are sent with every request
	ExtraHTTPHeaders map[string]string

	// ProxyServer routes traffic through a proxy when non-empty
	ProxyServer string

	// StorageStatePath preloads cookies and local storage when non-empty
	StorageStatePath string
}

// EngineStarter starts an engine. Session uses StartEngine by default;
// tests inject fakes.
type EngineStarter func() (Engine, error)
