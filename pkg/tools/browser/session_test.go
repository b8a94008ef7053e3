package browser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_GetPage_LazyLaunch(t *testing.T) {
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{Headless: true, TimeoutMs: 15000}, engine)

	// No launch until first use
	assert.Empty(t, engine.launches)

	page, err := session.GetPage()
	require.NoError(t, err)
	require.NotNil(t, page)

	require.Len(t, engine.launches, 1)
	assert.True(t, engine.launches[0])
	assert.Equal(t, 15000.0, engine.browser.context.page.timeoutMs)

	// Second call reuses the page without relaunching
	again, err := session.GetPage()
	require.NoError(t, err)
	assert.Same(t, page, again)
	assert.Len(t, engine.launches, 1)
}

func TestSession_GetPage_ContextOptions(t *testing.T) {
	t.Setenv("HTTPS_PROXY", "")
	t.Setenv("HTTP_PROXY", "")

	engine := newFakeEngine()
	session := newTestSession(SessionOptions{ProxyServer: "http://proxy:8080"}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)

	require.Len(t, engine.browser.contextOpts, 1)
	opts := engine.browser.contextOpts[0]
	assert.Equal(t, userAgent, opts.UserAgent)
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, opts.Viewport)
	assert.Equal(t, "http://proxy:8080", opts.ProxyServer)
	assert.Contains(t, opts.ExtraHTTPHeaders, "Accept-Language")
	assert.Empty(t, opts.StorageStatePath, "no storage file on disk, nothing to preload")
}

func TestSession_GetPage_LoadsExistingStorageState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "cookie.json")
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{StorageStatePath: statePath}, engine)

	// Seed a state file first
	_, err := NewStorageStateStore(statePath).Save(&fakeContext{})
	require.NoError(t, err)

	_, err = session.GetPage()
	require.NoError(t, err)

	require.Len(t, engine.browser.contextOpts, 1)
	assert.Equal(t, statePath, engine.browser.contextOpts[0].StorageStatePath)
}

func TestSession_GetPage_RetriesCleanOnCorruptStorageState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "cookie.json")
	engine := newFakeEngine()
	engine.browser.failStorageLoad = true
	session := newTestSession(SessionOptions{StorageStatePath: statePath}, engine)

	_, err := NewStorageStateStore(statePath).Save(&fakeContext{})
	require.NoError(t, err)

	page, err := session.GetPage()
	require.NoError(t, err)
	require.NotNil(t, page)

	// First attempt with storage state, clean retry without
	require.Len(t, engine.browser.contextOpts, 2)
	assert.NotEmpty(t, engine.browser.contextOpts[0].StorageStatePath)
	assert.Empty(t, engine.browser.contextOpts[1].StorageStatePath)
}

func TestSession_GetPage_AllOrNothingOnPageFailure(t *testing.T) {
	engine := newFakeEngine()
	engine.browser.context.newPageErr = errors.New("page boom")
	session := newTestSession(SessionOptions{}, engine)

	_, err := session.GetPage()
	require.Error(t, err)

	// Everything acquired so far must be released
	assert.Equal(t, 1, engine.browser.context.closeCalls)
	assert.Equal(t, 1, engine.browser.closeCalls)
	assert.Equal(t, 1, engine.stopCalls)
	assert.Nil(t, session.page)
	assert.Nil(t, session.context)
	assert.Nil(t, session.browser)
	assert.Nil(t, session.engine)
}

func TestSession_GetPage_LaunchFailureStopsEngine(t *testing.T) {
	engine := newFakeEngine()
	engine.launchErr = errors.New("no binary")
	session := newTestSession(SessionOptions{}, engine)

	_, err := session.GetPage()
	require.Error(t, err)
	assert.Equal(t, 1, engine.stopCalls)
	assert.Nil(t, session.engine)
}

func TestSession_Reconfigure_NoPageOnlyUpdatesFlag(t *testing.T) {
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{Headless: true}, engine)

	session.Reconfigure(false)

	assert.False(t, session.Headless())
	assert.Empty(t, engine.launches)
	assert.Zero(t, engine.stopCalls)
}

func TestSession_Reconfigure_WithPageTearsDown(t *testing.T) {
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{Headless: true}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)

	session.Reconfigure(false)

	assert.False(t, session.Headless())
	assert.Nil(t, session.page)
	assert.Equal(t, 1, engine.browser.closeCalls)
	assert.Equal(t, 1, engine.stopCalls)

	// Next GetPage relaunches with the new flag
	_, err = session.GetPage()
	require.NoError(t, err)
	require.Len(t, engine.launches, 2)
	assert.False(t, engine.launches[1])
}

func TestSession_SaveStorageState_Failures(t *testing.T) {
	engine := newFakeEngine()

	// No path configured
	session := newTestSession(SessionOptions{}, engine)
	ok, msg := session.SaveStorageState()
	assert.False(t, ok)
	assert.Equal(t, "No storage state path configured.", msg)

	// Path configured but browser never started
	session = newTestSession(SessionOptions{StorageStatePath: filepath.Join(t.TempDir(), "s.json")}, engine)
	ok, msg = session.SaveStorageState()
	assert.False(t, ok)
	assert.Equal(t, "Browser not started yet.", msg)
}

func TestSession_SaveStorageState_Success(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "browser", "cookie.json")
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{StorageStatePath: statePath}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)

	ok, msg := session.SaveStorageState()
	assert.True(t, ok)
	assert.Contains(t, msg, statePath)
	assert.Contains(t, engine.browser.context.savedPaths, statePath)
}

func TestSession_Close_SavesStateBestEffort(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "cookie.json")
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{StorageStatePath: statePath}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)

	session.Close()

	assert.Contains(t, engine.browser.context.savedPaths, statePath)
	assert.Equal(t, 1, engine.browser.closeCalls)
	assert.Equal(t, 1, engine.stopCalls)
	assert.Nil(t, session.page)
}

func TestSession_Close_ProceedsWhenSaveFails(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "cookie.json")
	engine := newFakeEngine()
	engine.browser.context.saveErr = errors.New("disk full")
	session := newTestSession(SessionOptions{StorageStatePath: statePath}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)

	session.Close()

	// Teardown completes despite the failed save
	assert.Equal(t, 1, engine.browser.closeCalls)
	assert.Equal(t, 1, engine.stopCalls)
	assert.Nil(t, session.context)
}

func TestSession_Close_Idempotent(t *testing.T) {
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)

	session.Close()
	session.Close()

	assert.Equal(t, 1, engine.browser.closeCalls)
	assert.Equal(t, 1, engine.stopCalls)
}

func TestSession_Relaunch(t *testing.T) {
	engine := newFakeEngine()
	session := newTestSession(SessionOptions{}, engine)

	_, err := session.GetPage()
	require.NoError(t, err)
	session.Close()

	page, err := session.GetPage()
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Len(t, engine.launches, 2)
}
