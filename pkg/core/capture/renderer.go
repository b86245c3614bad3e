package capture

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"decisionscan/pkg/core/artifact"
	"decisionscan/pkg/models"
)

// Machine-stable per-viewport error tags surfaced in debug.errors.
const (
	ErrTagTimeoutDOM    = "timeout_domcontentloaded"
	ErrTagNavigation    = "navigation_error"
	ErrTagScreenshot    = "screenshot_timeout"
	ErrTagEngineCrash   = "engine_crash"
	ErrTagArtifactWrite = "artifact_write_failed"
)

type viewportSpec struct {
	name      models.Viewport
	width     int
	height    int
	mobile    bool
	userAgent string
}

var viewports = []viewportSpec{
	{
		name:   models.ViewportDesktop,
		width:  1365,
		height: 768,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	},
	{
		name:   models.ViewportMobile,
		width:  390,
		height: 844,
		mobile: true,
		userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) " +
			"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
	},
}

// blockedPatterns trims heavy and tracking resources to cut latency and
// memory. Video, media, large fonts, known analytics hosts.
var blockedPatterns = []string{
	"*.mp4", "*.webm", "*.avi", "*.mov", "*.m4v",
	"*.mp3", "*.wav", "*.ogg",
	"*.woff", "*.woff2", "*.ttf", "*.otf",
	"*google-analytics.com*", "*googletagmanager.com*",
	"*doubleclick.net*", "*facebook.net*", "*hotjar.com*",
	"*segment.io*", "*clarity.ms*", "*mixpanel.com*",
}

// RenderConfig holds the per-stage budgets of a render.
type RenderConfig struct {
	NavTimeout        time.Duration // per wait stage (domcontentloaded, load)
	ScreenshotTimeout time.Duration // above-the-fold grab
	FullPageTimeout   time.Duration // optional full-page grab
	FullPage          bool          // additionally try full-page screenshots
	InlineFallback    bool          // embed data URIs alongside URLs
	MaxTextBytes      int           // visible-text ceiling
}

// DefaultRenderConfig mirrors the budgets in the capture policy.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NavTimeout:        60 * time.Second,
		ScreenshotTimeout: 30 * time.Second,
		FullPageTimeout:   60 * time.Second,
		MaxTextBytes:      200_000,
	}
}

// Renderer turns one URL into a Capture. The browser-backed implementation
// lives here; tests inject fakes through this interface.
type Renderer interface {
	Render(ctx context.Context, url string, base string) *models.Capture
}

// BrowserRenderer renders through the shared warm browser and persists
// screenshots via the artifact store.
type BrowserRenderer struct {
	cfg       RenderConfig
	engine    *Engine
	artifacts *artifact.Store
}

// NewBrowserRenderer wires the renderer to its engine and artifact store.
func NewBrowserRenderer(cfg RenderConfig, engine *Engine, artifacts *artifact.Store) *BrowserRenderer {
	return &BrowserRenderer{cfg: cfg, engine: engine, artifacts: artifacts}
}

// Render captures both viewports. It never returns an error: every failure
// is folded into the Capture status and per-viewport error tags.
func (r *BrowserRenderer) Render(ctx context.Context, url string, base string) *models.Capture {
	cap := &models.Capture{
		URL:        url,
		Shots:      make(map[models.Viewport]*models.ViewportShot),
		CapturedAt: time.Now(),
	}

	browser, err := r.engine.Browser()
	if err != nil {
		fmt.Printf("[CAPTURE] Browser unavailable: %v\n", err)
		for _, vp := range viewports {
			cap.Shots[vp.name] = &models.ViewportShot{Status: "error", Error: ErrTagEngineCrash}
		}
		cap.Status = models.CaptureError
		return cap
	}

	okShots := 0
	for _, vp := range viewports {
		shot, text := r.renderViewport(ctx, browser, url, base, vp)
		cap.Shots[vp.name] = shot
		if shot.Status == "ok" {
			okShots++
		}
		// One extraction is enough; desktop wins, mobile fills in on degrade.
		if cap.ExtractedText == "" && text != "" {
			cap.ExtractedText = text
		}
	}

	switch okShots {
	case len(viewports):
		cap.Status = models.CaptureOK
	case 0:
		cap.Status = models.CaptureError
	default:
		cap.Status = models.CaptureDegraded
	}
	return cap
}

func (r *BrowserRenderer) renderViewport(ctx context.Context, browser *rod.Browser, url, base string, vp viewportSpec) (*models.ViewportShot, string) {
	shot := &models.ViewportShot{Status: "error", Width: vp.width, Height: vp.height}

	incognito, err := browser.Incognito()
	if err != nil {
		r.engine.Invalidate()
		shot.Error = ErrTagEngineCrash
		return shot, ""
	}

	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		r.engine.Invalidate()
		shot.Error = ErrTagEngineCrash
		return shot, ""
	}
	// The browser context is scoped to this render; release on every exit.
	defer page.Close()

	page = page.Context(ctx)

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.width,
		Height:            vp.height,
		DeviceScaleFactor: 1.0,
		Mobile:            vp.mobile,
	}).Call(page); err != nil {
		fmt.Printf("[CAPTURE] %s: viewport override failed: %v\n", vp.name, err)
	}
	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: vp.userAgent})

	_ = proto.NetworkEnable{}.Call(page)
	_ = proto.NetworkSetBlockedURLs{Urls: blockedPatterns}.Call(page)

	if err := page.Timeout(r.cfg.NavTimeout).Navigate(url); err != nil {
		shot.Error = navErrorTag(err)
		if shot.Error == ErrTagEngineCrash {
			r.engine.Invalidate()
		}
		return shot, ""
	}

	r.waitReady(page)

	data, tag := r.screenshot(page)
	if tag != "" {
		shot.Error = tag
		return shot, r.extractText(page)
	}

	ref, err := r.artifacts.Put(data, "screenshot", vp.name, base, r.cfg.InlineFallback)
	if err != nil {
		fmt.Printf("[CAPTURE] %s: %v\n", vp.name, err)
		// Degrade to an inline data URI so the caller still gets pixels.
		shot.Error = ErrTagArtifactWrite
		shot.DataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
		shot.Status = "ok"
		return shot, r.extractText(page)
	}

	shot.Status = "ok"
	shot.Artifact = &ref
	shot.URL = ref.URL
	shot.DataURI = ref.DataURI
	if ref.Width > 0 {
		shot.Width = ref.Width
		shot.Height = ref.Height
	}
	shot.Error = ""
	return shot, r.extractText(page)
}

// waitReady runs the cascaded page-load strategy: DOM content loaded, then
// full load, then minimal commit (navigation already succeeded, proceed).
func (r *BrowserRenderer) waitReady(page *rod.Page) {
	if err := page.Timeout(r.cfg.NavTimeout).WaitDOMStable(time.Second, 0.2); err == nil {
		return
	}
	if err := page.Timeout(r.cfg.NavTimeout).WaitLoad(); err == nil {
		return
	}
	fmt.Printf("[CAPTURE] Page never settled, proceeding on commit\n")
}

// screenshot applies the per-viewport policy: above-the-fold first; if the
// build asks for full-page, try it and fall back to ATF on timeout.
func (r *BrowserRenderer) screenshot(page *rod.Page) ([]byte, string) {
	atf, err := page.Timeout(r.cfg.ScreenshotTimeout).Screenshot(false, nil)
	if err != nil {
		if isEngineCrash(err) {
			r.engine.Invalidate()
			return nil, ErrTagEngineCrash
		}
		return nil, ErrTagScreenshot
	}

	if r.cfg.FullPage {
		full, err := page.Timeout(r.cfg.FullPageTimeout).Screenshot(true, nil)
		if err == nil {
			return full, ""
		}
		fmt.Printf("[CAPTURE] Full-page screenshot failed, keeping above-the-fold: %v\n", err)
	}
	return atf, ""
}

func (r *BrowserRenderer) extractText(page *rod.Page) string {
	el, err := page.Timeout(10 * time.Second).Element("body")
	if err != nil {
		return ""
	}
	raw, err := el.Text()
	if err != nil {
		return ""
	}
	return SanitizeText(raw, r.cfg.MaxTextBytes)
}

func navErrorTag(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTagTimeoutDOM
	}
	if isEngineCrash(err) {
		return ErrTagEngineCrash
	}
	return ErrTagNavigation
}

// isEngineCrash spots transport-level failures that mean the shared browser
// itself is gone rather than the page misbehaving.
func isEngineCrash(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "websocket") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "browser has been closed")
}
