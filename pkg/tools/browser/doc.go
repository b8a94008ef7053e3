// Package browser lets an agent drive a real web browser through a
// small, stable command surface: navigate, snapshot, read content,
// click, type, press keys, and persist login state.
//
// # Architecture
//
// The package is built around three core concepts:
//
//  1. Session: owns one browser process, one context, and one page,
//     launched lazily and torn down as a unit
//  2. Engine: narrow interfaces over the external browser-automation
//     engine (Playwright); rendering and DOM execution happen there
//  3. Tools: seven plain-text-in, plain-text-out commands sharing one
//     session
//
// # Element references
//
// browser_snapshot stamps interactive elements with a data-surf-ref
// marker attribute holding a 1-based position, and returns one
// description line per element. browser_click and browser_type locate
// elements through that marker alone. Refs live entirely in the page's
// DOM: navigating or re-snapshotting re-derives them, and a stale ref
// simply fails to match anything.
//
// # Session persistence
//
// Cookies and local storage are saved to the configured storage state
// file (owner read/write only) after navigation, on browser_save_session,
// and best-effort on close, so logins survive restarts.
//
// # Error handling
//
// Every tool is a catch-all boundary: failures are returned as strings
// beginning with "Error:", classified as Configuration, Validation,
// Storage, or Operation failures. No engine error type escapes the
// package and a failed command leaves the session retryable.
package browser
