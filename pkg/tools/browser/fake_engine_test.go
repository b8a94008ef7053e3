package browser

import (
	"errors"
	"os"
	"sync"
)

// Fake engine implementations used across the package tests. They
// record every call so tests can assert on lifecycle ordering without
// a real browser.

type fakeEngine struct {
	browser   *fakeBrowser
	launchErr error

	launches  []bool // headless flag per launch
	stopCalls int
}

func (e *fakeEngine) Launch(headless bool, args []string) (EngineBrowser, error) {
	e.launches = append(e.launches, headless)
	if e.launchErr != nil {
		return nil, e.launchErr
	}
	return e.browser, nil
}

func (e *fakeEngine) Stop() error {
	e.stopCalls++
	return nil
}

type fakeBrowser struct {
	context *fakeContext

	// failStorageLoad rejects context creation whenever a storage state
	// preload is requested, simulating a corrupt state file.
	failStorageLoad bool
	newContextErr   error

	contextOpts []ContextOptions
	closeCalls  int
}

func (b *fakeBrowser) NewContext(opts ContextOptions) (EngineContext, error) {
	b.contextOpts = append(b.contextOpts, opts)
	if b.newContextErr != nil {
		return nil, b.newContextErr
	}
	if b.failStorageLoad && opts.StorageStatePath != "" {
		return nil, errors.New("invalid storage state")
	}
	return b.context, nil
}

func (b *fakeBrowser) Close() error {
	b.closeCalls++
	return nil
}

type fakeContext struct {
	page       *fakePage
	newPageErr error
	saveErr    error

	mu         sync.Mutex
	savedPaths []string
	closeCalls int
}

func (c *fakeContext) NewPage() (EnginePage, error) {
	if c.newPageErr != nil {
		return nil, c.newPageErr
	}
	return c.page, nil
}

func (c *fakeContext) SaveStorageState(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.savedPaths = append(c.savedPaths, path)
	// The real engine writes the blob itself; emulate that so the
	// store's permission clamp has a file to act on.
	return os.WriteFile(path, []byte(`{"cookies":[]}`), 0644)
}

func (c *fakeContext) Close() error {
	c.closeCalls++
	return nil
}

type fakePage struct {
	evaluateFn func(script string, arg interface{}) (interface{}, error)
	innerText  string
	innerErr   error
	html       string
	htmlErr    error
	title      string
	gotoErr    error
	clickErr   error
	typeErr    error
	pressErr   error

	gotos      []string
	clicks     []int
	typed      []typedInput
	pressed    []string
	timeoutMs  float64
	closeCalls int
}

type typedInput struct {
	ref    int
	text   string
	submit bool
}

func (p *fakePage) Goto(url string) error {
	if p.gotoErr != nil {
		return p.gotoErr
	}
	p.gotos = append(p.gotos, url)
	return nil
}

func (p *fakePage) Title() (string, error) {
	return p.title, nil
}

func (p *fakePage) Evaluate(script string, arg interface{}) (interface{}, error) {
	if p.evaluateFn != nil {
		return p.evaluateFn(script, arg)
	}
	return "", nil
}

func (p *fakePage) InnerText(selector string) (string, error) {
	if p.innerErr != nil {
		return "", p.innerErr
	}
	return p.innerText, nil
}

func (p *fakePage) HTML() (string, error) {
	if p.htmlErr != nil {
		return "", p.htmlErr
	}
	return p.html, nil
}

func (p *fakePage) ClickRef(ref int) error {
	if p.clickErr != nil {
		return p.clickErr
	}
	p.clicks = append(p.clicks, ref)
	return nil
}

func (p *fakePage) TypeRef(ref int, text string, submit bool) error {
	if p.typeErr != nil {
		return p.typeErr
	}
	p.typed = append(p.typed, typedInput{ref: ref, text: text, submit: submit})
	return nil
}

func (p *fakePage) PressKey(key string) error {
	if p.pressErr != nil {
		return p.pressErr
	}
	p.pressed = append(p.pressed, key)
	return nil
}

func (p *fakePage) SetDefaultTimeout(ms float64) {
	p.timeoutMs = ms
}

func (p *fakePage) Close() error {
	p.closeCalls++
	return nil
}

// newFakeEngine builds a fully wired fake engine stack.
func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		browser: &fakeBrowser{
			context: &fakeContext{
				page: &fakePage{},
			},
		},
	}
}

// newTestSession creates a session backed by the given fake engine.
func newTestSession(opts SessionOptions, engine *fakeEngine) *Session {
	s := NewSession(opts)
	s.startEngine = func() (Engine, error) { return engine, nil }
	return s
}
