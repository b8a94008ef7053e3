package browser

// Default values for browser sessions and commands
const (
	// DefaultTimeout is the default per-operation timeout in milliseconds
	DefaultTimeout = 30000.0

	// DefaultViewportWidth and DefaultViewportHeight set the fixed page size
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// ContentMaxChars caps browser_content output to keep token usage reasonable
	ContentMaxChars = 6000

	// DefaultMaxElements and MaxElementsLimit bound browser_snapshot output
	DefaultMaxElements = 50
	MaxElementsLimit   = 200

	// RefAttribute is the page-side marker holding a snapshot element ref.
	// It is the only mechanism by which click/type locate elements.
	RefAttribute = "data-surf-ref"
)

// launchArgs suppresses the Chromium automation-detection banner.
var launchArgs = []string{"--disable-blink-features=AutomationControlled"}

// userAgent mimics a regular desktop browser to avoid bot detection on
// common sites.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_2) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// extraHeaders accompany the user agent for the same reason.
var extraHeaders = map[string]string{
	"Sec-CH-UA":       `"Not A(Brand";v="24", "Chromium";v="120", "Google Chrome";v="120"`,
	"Accept-Language": "en-US,en;q=0.9",
}

// SessionOptions configures a browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// TimeoutMs sets the default timeout for page operations (milliseconds)
	TimeoutMs float64

	// ProxyServer is an explicit proxy URL; empty falls back to the
	// HTTPS_PROXY / HTTP_PROXY environment variables
	ProxyServer string

	// StorageStatePath is where cookies and local storage are persisted;
	// empty disables persistence
	StorageStatePath string
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}
