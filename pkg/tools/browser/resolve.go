package browser

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// resolveProxy returns the effective proxy URL: explicit config wins,
// then the HTTPS_PROXY and HTTP_PROXY environment variables, in that
// order. Empty means no proxy.
func resolveProxy(proxyServer string) string {
	if p := strings.TrimSpace(proxyServer); p != "" {
		return p
	}
	if p := os.Getenv("HTTPS_PROXY"); p != "" {
		return p
	}
	return os.Getenv("HTTP_PROXY")
}

// resolveStorageStatePath returns the resolved storage state file path.
// An explicit path (with ~ expanded) wins; otherwise the path defaults
// to <workspace>/browser/cookie.json. Empty means no persistence.
func resolveStorageStatePath(explicit, workspace string) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		return expandHome(explicit)
	}
	if workspace == "" {
		return ""
	}
	return filepath.Join(workspace, "browser", "cookie.json")
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// validateURL checks that rawURL is a well-formed http or https URL.
// Returns ("", true) when valid, otherwise a reason naming the
// offending scheme or the missing domain.
func validateURL(rawURL string) (reason string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err.Error(), false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		scheme := u.Scheme
		if scheme == "" {
			scheme = "none"
		}
		return "Only http/https allowed, got '" + scheme + "'", false
	}
	if u.Host == "" {
		return "Missing domain", false
	}
	return "", true
}
