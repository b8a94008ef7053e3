package browser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// linuxbrewLib is where homebrew-on-Linux installs shared libraries.
// Chromium under WSL2 needs libasound.so.2 from there when the path is
// not already on LD_LIBRARY_PATH.
const linuxbrewLib = "/home/linuxbrew/.linuxbrew/lib"

// ensureEngineLibs patches LD_LIBRARY_PATH so the Chromium binary can
// resolve its shared libraries. Must run before the driver process
// starts, since the driver inherits the environment.
func ensureEngineLibs() {
	info, err := os.Stat(linuxbrewLib)
	if err != nil || !info.IsDir() {
		return
	}
	current := os.Getenv("LD_LIBRARY_PATH")
	if strings.Contains(current, linuxbrewLib) {
		return
	}
	if current == "" {
		os.Setenv("LD_LIBRARY_PATH", linuxbrewLib)
	} else {
		os.Setenv("LD_LIBRARY_PATH", linuxbrewLib+":"+current)
	}
}

// StartEngine starts the Playwright driver process. Driver output is
// discarded so it cannot interleave with command results.
func StartEngine() (Engine, error) {
	ensureEngineLibs()

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, wrapError(KindConfiguration, err,
			"browser engine is not installed. Run: go run github.com/playwright-community/playwright-go/cmd/playwright install chromium")
	}
	return &playwrightEngine{pw: pw}, nil
}

type playwrightEngine struct {
	pw *playwright.Playwright
}

func (e *playwrightEngine) Launch(headless bool, args []string) (EngineBrowser, error) {
	b, err := e.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     args,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Executable doesn't exist") {
			return nil, wrapError(KindConfiguration, err,
				"Chromium browser not found. Run: go run github.com/playwright-community/playwright-go/cmd/playwright install chromium")
		}
		return nil, wrapError(KindOperation, err, "failed to launch browser")
	}
	return &playwrightBrowser{browser: b}, nil
}

func (e *playwrightEngine) Stop() error {
	return e.pw.Stop()
}

type playwrightBrowser struct {
	browser playwright.Browser
}

func (b *playwrightBrowser) NewContext(opts ContextOptions) (EngineContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(opts.UserAgent),
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
		ExtraHttpHeaders: opts.ExtraHTTPHeaders,
	}
	if opts.ProxyServer != "" {
		ctxOpts.Proxy = &playwright.Proxy{Server: opts.ProxyServer}
	}
	if opts.StorageStatePath != "" {
		ctxOpts.StorageStatePath = playwright.String(opts.StorageStatePath)
	}

	ctx, err := b.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, err
	}
	return &playwrightContext{ctx: ctx}, nil
}

func (b *playwrightBrowser) Close() error {
	return b.browser.Close()
}

type playwrightContext struct {
	ctx playwright.BrowserContext
}

func (c *playwrightContext) NewPage() (EnginePage, error) {
	page, err := c.ctx.NewPage()
	if err != nil {
		return nil, err
	}
	return &playwrightPage{page: page}, nil
}

func (c *playwrightContext) SaveStorageState(path string) error {
	_, err := c.ctx.StorageState(path)
	return err
}

func (c *playwrightContext) Close() error {
	return c.ctx.Close()
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return err
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) Evaluate(script string, arg interface{}) (interface{}, error) {
	return p.page.Evaluate(script, arg)
}

func (p *playwrightPage) InnerText(selector string) (string, error) {
	return p.page.InnerText(selector)
}

func (p *playwrightPage) HTML() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) refLocator(ref int) playwright.Locator {
	return p.page.Locator(fmt.Sprintf(`[%s="%d"]`, RefAttribute, ref)).First()
}

func (p *playwrightPage) ClickRef(ref int) error {
	return p.refLocator(ref).Click()
}

func (p *playwrightPage) TypeRef(ref int, text string, submit bool) error {
	el := p.refLocator(ref)
	if err := el.Fill(""); err != nil {
		return err
	}
	if err := el.PressSequentially(text); err != nil {
		return err
	}
	if submit {
		return el.Press("Enter")
	}
	return nil
}

func (p *playwrightPage) PressKey(key string) error {
	return p.page.Keyboard().Press(key)
}

func (p *playwrightPage) SetDefaultTimeout(ms float64) {
	p.page.SetDefaultTimeout(ms)
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
