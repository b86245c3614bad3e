// Package capture drives a headless Chromium through go-rod to render one
// URL at desktop and mobile viewports, producing screenshots plus the
// post-render visible text. Results are cached per normalized URL with a
// single-flight guarantee.
package capture

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Engine owns the warm browser shared across requests. Launch and relaunch
// happen under the mutex; no two requests may launch concurrently. A crash
// invalidates only the browser handle, never the capture cache.
type Engine struct {
	mu         sync.Mutex
	browser    *rod.Browser
	controlURL string
}

// NewEngine returns an engine that launches lazily on first use.
func NewEngine() *Engine {
	return &Engine{}
}

// Browser returns the live browser, launching or relaunching as needed.
func (e *Engine) Browser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		if _, err := e.browser.Version(); err == nil {
			return e.browser, nil
		}
		fmt.Printf("[CAPTURE] Stale browser connection detected, relaunching...\n")
		_ = e.browser.Close()
		e.browser = nil
		e.controlURL = ""
	}

	url, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	e.browser = browser
	e.controlURL = url
	fmt.Printf("[CAPTURE] Browser launched\n")
	return e.browser, nil
}

// Invalidate drops the current browser handle so the next request
// relaunches. Called when a render hits an engine-level failure.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		_ = e.browser.Close()
		e.browser = nil
		e.controlURL = ""
	}
}

// Shutdown closes the browser at process exit.
func (e *Engine) Shutdown() {
	e.Invalidate()
}
