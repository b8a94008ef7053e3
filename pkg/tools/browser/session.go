package browser

import (
	"github.com/entrhq/surf/pkg/logging"
)

// Session owns one browser process, one context, and one active page.
// The browser is launched lazily on first use and can be torn down and
// relaunched any number of times. Either all three handles are live or
// none are; a failed launch never leaves partial state behind.
//
// A session carries a single serialized stream of commands. Callers
// must not issue concurrent commands against the same session.
type Session struct {
	headless    bool
	timeoutMs   float64
	proxyServer string

	store *StorageStateStore
	log   *logging.Logger

	startEngine EngineStarter

	engine  Engine
	browser EngineBrowser
	context EngineContext
	page    EnginePage
}

// NewSession creates an empty session. No browser is launched until the
// first GetPage call.
func NewSession(opts SessionOptions) *Session {
	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = DefaultTimeout
	}
	log, _ := logging.NewLogger("browser")

	return &Session{
		headless:    opts.Headless,
		timeoutMs:   opts.TimeoutMs,
		proxyServer: opts.ProxyServer,
		store:       NewStorageStateStore(opts.StorageStatePath),
		log:         log,
		startEngine: StartEngine,
	}
}

// GetPage returns the active page, performing a full launch if none
// exists. The launch is all-or-nothing: on any failure every handle
// acquired so far is released and the session stays empty.
func (s *Session) GetPage() (EnginePage, error) {
	if s.page != nil {
		return s.page, nil
	}

	engine, err := s.startEngine()
	if err != nil {
		return nil, err
	}

	proxy := resolveProxy(s.proxyServer)
	s.log.Infof("launching (headless=%v, proxy=%s)", s.headless, orNone(proxy))

	browser, err := engine.Launch(s.headless, launchArgs)
	if err != nil {
		_ = engine.Stop()
		return nil, err
	}

	ctxOpts := ContextOptions{
		UserAgent:        userAgent,
		Viewport:         Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		ExtraHTTPHeaders: extraHeaders,
		ProxyServer:      proxy,
	}
	if s.store.Exists() {
		ctxOpts.StorageStatePath = s.store.Path()
		s.log.Debugf("loading storage state from %s", s.store.Path())
	}

	context, err := browser.NewContext(ctxOpts)
	if err != nil && ctxOpts.StorageStatePath != "" {
		// A corrupt saved state must not kill the launch: degrade to a
		// clean session instead.
		s.log.Warnf("storage state load failed, starting clean: %v", err)
		ctxOpts.StorageStatePath = ""
		context, err = browser.NewContext(ctxOpts)
	}
	if err != nil {
		_ = browser.Close()
		_ = engine.Stop()
		return nil, wrapError(KindOperation, err, "failed to create browser context")
	}

	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = browser.Close()
		_ = engine.Stop()
		return nil, wrapError(KindOperation, err, "failed to open page")
	}
	page.SetDefaultTimeout(s.timeoutMs)

	s.engine = engine
	s.browser = browser
	s.context = context
	s.page = page
	return page, nil
}

// Reconfigure closes the current session, if any, and updates the
// headless setting for the next GetPage call.
func (s *Session) Reconfigure(headless bool) {
	if s.page != nil {
		s.Close()
	}
	s.headless = headless
}

// Headless reports the session's current headless setting.
func (s *Session) Headless() bool {
	return s.headless
}

// StorageConfigured reports whether this session persists storage state.
func (s *Session) StorageConfigured() bool {
	return s.store.Configured()
}

// SaveStorageState writes cookies and storage to disk. It reports the
// outcome as (ok, message) and never panics or propagates an error past
// this boundary.
func (s *Session) SaveStorageState() (bool, string) {
	if !s.store.Configured() {
		return false, "No storage state path configured."
	}
	if s.context == nil {
		return false, "Browser not started yet."
	}

	path, err := s.store.Save(s.context)
	if err != nil {
		return false, "Save failed: " + err.Error()
	}
	s.log.Infof("storage state saved to %s", path)
	return true, "Saved to " + path
}

// saveStorageStateDetached saves storage state in the background. The
// live handles are snapshotted on the caller's goroutine, so a Close or
// Reconfigure issued after this returns cannot race the save; at worst
// the save runs against an already-closed context and its error is
// logged. No-op when persistence is off or no context exists.
func (s *Session) saveStorageStateDetached() {
	if !s.store.Configured() || s.context == nil {
		return
	}
	store, context, log := s.store, s.context, s.log
	go func() {
		if _, err := store.Save(context); err != nil {
			log.Warnf("background storage state save failed: %v", err)
		}
	}()
}

// Close tears down the browser, saving storage state first when both a
// context and a path exist. Save failures are logged, never propagated:
// teardown always completes and the session returns to its empty,
// relaunchable state. Safe to call repeatedly.
func (s *Session) Close() {
	if s.context != nil && s.store.Configured() {
		if _, err := s.store.Save(s.context); err != nil {
			s.log.Warnf("storage state save on close failed: %v", err)
		}
	}

	if s.browser != nil {
		_ = s.browser.Close()
	}
	s.browser = nil
	s.context = nil
	s.page = nil

	if s.engine != nil {
		_ = s.engine.Stop()
		s.engine = nil
	}
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}
