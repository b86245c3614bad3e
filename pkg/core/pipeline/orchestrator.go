// Package pipeline sequences one analysis request through capture,
// feature extraction, classification, evidence, decision, memory, and
// report composition. Stages degrade instead of failing: only validation
// can reject a request, everything downstream produces a usable response.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"decisionscan/pkg/core/capture"
	"decisionscan/pkg/core/classify"
	"decisionscan/pkg/core/decision"
	"decisionscan/pkg/core/evidence"
	"decisionscan/pkg/core/features"
	"decisionscan/pkg/core/report"
	"decisionscan/pkg/models"
)

// PipelineVersion tags every response's debug trace.
const PipelineVersion = "human_report_v2"

// Capturer renders a URL at both viewports, served from cache when fresh.
type Capturer interface {
	Capture(ctx context.Context, rawURL string, refresh bool, base string) *models.Capture
}

// ImageFeaturizer derives PageFeatures from screenshot bytes.
type ImageFeaturizer interface {
	FromImage(ctx context.Context, image []byte) (*models.PageFeatures, error)
}

// Memory is the slice of the memory layer the orchestrator drives
// directly; the decision engine holds its own advisor handle.
type Memory interface {
	Record(ctx context.Context, contextID string, rec models.HistoricalOutcome) error
	Insight(contextID string) *models.DecisionHistoryInsight
}

// Decider ranks blockers from merged evidence.
type Decider interface {
	Decide(in decision.Input) decision.Output
}

// Composer produces the seven-section report.
type Composer interface {
	Compose(ctx context.Context, in report.Input) report.Result
}

// Config tunes the orchestrator.
type Config struct {
	RequestBudget time.Duration // wall-clock ceiling per request, default 120s
}

// Orchestrator owns the long-lived collaborators and runs the per-request
// state machine.
type Orchestrator struct {
	cfg      Config
	capture  Capturer
	imaging  ImageFeaturizer
	memory   Memory
	engine   Decider
	composer Composer
}

// NewOrchestrator wires the pipeline. capture and imaging may be nil when
// the deployment does not serve URL or image mode respectively.
func NewOrchestrator(cfg Config, capture Capturer, imaging ImageFeaturizer, memory Memory, engine Decider, composer Composer) *Orchestrator {
	if cfg.RequestBudget <= 0 {
		cfg.RequestBudget = 120 * time.Second
	}
	return &Orchestrator{
		cfg:      cfg,
		capture:  capture,
		imaging:  imaging,
		memory:   memory,
		engine:   engine,
		composer: composer,
	}
}

// trace accumulates the state transitions and error tags for debug output.
type trace struct {
	steps  []string
	errors []string
}

func (t *trace) step(name string) {
	t.steps = append(t.steps, name)
}

func (t *trace) fail(tag string) {
	t.errors = append(t.errors, tag)
}

// Run executes the full pipeline. A non-nil error is returned only for
// validation failures; every other failure degrades into the response.
func (o *Orchestrator) Run(ctx context.Context, req *models.AnalysisRequest, base string) (*models.ScanResponse, error) {
	tr := &trace{}
	tr.step("RECEIVED")

	if err := req.Validate(); err != nil {
		tr.step("REJECTED")
		return nil, err
	}
	tr.step("VALIDATED")

	ctx, cancel := context.WithTimeout(ctx, o.cfg.RequestBudget)
	defer cancel()

	degraded := false

	// CAPTURING (URL mode only).
	var capture *models.Capture
	if req.Mode == models.ModeURL {
		tr.step("CAPTURING")
		if o.capture == nil {
			capture = unavailableCapture(req.URL)
		} else {
			capture = o.capture.Capture(ctx, req.URL, req.Refresh, base)
		}
		if capture.Status != models.CaptureOK {
			degraded = true
			collectShotErrors(capture, tr)
		}
	}

	// FEATURING.
	tr.step("FEATURING")
	feats, pageURL := o.extractFeatures(ctx, req, capture, tr)
	if feats == nil {
		// Image path failed entirely; build the floor feature set so the
		// engine still has something to rank on.
		degraded = true
		feats = features.FromText("", pageURL)
	}

	// CONTEXTING.
	tr.step("CONTEXTING")
	analysisText := sourceText(req, capture)
	brand := classify.BrandContext(analysisText, pageURL)
	stage := classify.Stage(feats)

	// EVIDENCING.
	tr.step("EVIDENCING")
	landing := evidence.Landing(feats)
	var adSignals, pricingSignals *models.DecisionSignals
	if req.AdText != "" {
		s := evidence.Ad(req.AdText)
		adSignals = &s
	}
	if req.PricingHTML != "" {
		s := evidence.Pricing(req.PricingHTML)
		pricingSignals = &s
	}
	merged := evidence.Merge(landing, adSignals, pricingSignals)

	// DECIDING.
	tr.step("DECIDING")
	contextID := o.contextID(req, capture)
	outcome := o.engine.Decide(decision.Input{
		Signals:         merged.Signals,
		MergeConfidence: merged.Confidence,
		Features:        feats,
		Brand:           brand,
		Stage:           stage,
		ContextID:       contextID,
	})

	// MEMORIZING. The insight reflects prior analyses only; the current
	// outcome is recorded after it is derived.
	tr.step("MEMORIZING")
	var insight *models.DecisionHistoryInsight
	if o.memory != nil {
		insight = o.memory.Insight(contextID)
		if err := o.memory.Record(ctx, contextID, models.HistoricalOutcome{
			ContextID: contextID,
			Outcome:   outcome.Primary,
			Stage:     stage,
			Timestamp: time.Now(),
		}); err != nil {
			tr.fail("memory_store_unavailable")
		}
	}

	// COMPOSING.
	tr.step("COMPOSING")
	composed := o.composer.Compose(ctx, report.Input{
		Goal:      req.Goal,
		Locale:    req.Locale,
		URL:       pageURL,
		Primary:   outcome.Primary,
		Secondary: outcome.Secondary,
		Stage:     stage,
		Brand:     brand,
		Features:  feats,
		PageType:  models.PageTypeResult{Type: feats.PageType, Confidence: feats.PageTypeConfidence},
		History:   insight,
	})
	if composed.ErrorTag != "" {
		tr.fail(composed.ErrorTag)
		degraded = true
	}

	tr.step("DONE")

	analysisStatus := "ok"
	if degraded {
		analysisStatus = "degraded"
	}

	return &models.ScanResponse{
		Status:         "ok",
		Mode:           req.Mode,
		AnalysisStatus: analysisStatus,
		Summary: models.Summary{
			URL:            pageURL,
			Goal:           req.Goal,
			Locale:         req.Locale,
			IssuesCount:    issueCount(outcome),
			QuickWinsCount: len(composed.Sections.MessageRecommendations),
		},
		HumanReport:    composed.Prose,
		Sections:       composed.Sections,
		Primary:        outcome.Primary,
		Secondary:      outcome.Secondary,
		Stage:          stage,
		Brand:          brand,
		PageType:       models.PageTypeResult{Type: feats.PageType, Confidence: feats.PageTypeConfidence},
		HistoryInsight: insight,
		Screenshots:    screenshotsFor(req.Mode, capture),
		Debug: models.DebugInfo{
			PipelineVersion: PipelineVersion,
			Steps:           tr.steps,
			Errors:          errorList(tr),
		},
	}, nil
}

// extractFeatures runs the mode-appropriate feature path. A nil return
// means even the degraded path failed (image mode only).
func (o *Orchestrator) extractFeatures(ctx context.Context, req *models.AnalysisRequest, capture *models.Capture, tr *trace) (*models.PageFeatures, string) {
	switch req.Mode {
	case models.ModeURL:
		pageURL := req.URL
		if capture != nil && capture.URL != "" {
			pageURL = capture.URL
		}
		text := ""
		if capture != nil {
			text = capture.ExtractedText
		}
		return features.FromText(text, pageURL), pageURL

	case models.ModeText:
		return features.FromText(req.Text, ""), ""

	default: // image
		if o.imaging == nil {
			tr.fail("vision_unavailable")
			return nil, ""
		}
		feats, err := o.imaging.FromImage(ctx, req.Image)
		if err != nil {
			fmt.Printf("[PIPELINE] Image featurization failed: %v\n", err)
			if ctx.Err() == context.DeadlineExceeded {
				tr.fail("llm_timeout")
			} else {
				tr.fail("llm_transport_error")
			}
			return nil, ""
		}
		return feats, ""
	}
}

// contextID keys the memory layer: the normalized URL for URL mode, a
// content hash otherwise.
func (o *Orchestrator) contextID(req *models.AnalysisRequest, capture *models.Capture) string {
	switch req.Mode {
	case models.ModeURL:
		if capture != nil && capture.URL != "" {
			return capture.URL
		}
		return req.URL
	case models.ModeText:
		sum := sha256.Sum256([]byte(req.Text))
		return "text:" + hex.EncodeToString(sum[:8])
	default:
		sum := sha256.Sum256(req.Image)
		return "image:" + hex.EncodeToString(sum[:8])
	}
}

func sourceText(req *models.AnalysisRequest, capture *models.Capture) string {
	if req.Mode == models.ModeText {
		return req.Text
	}
	if capture != nil {
		return capture.ExtractedText
	}
	return ""
}

// screenshotsFor upholds the response invariant: never nil in URL mode,
// both viewport entries always present.
func screenshotsFor(mode models.Mode, cap *models.Capture) *models.Screenshots {
	if mode != models.ModeURL {
		return nil
	}
	s := &models.Screenshots{
		Desktop: &models.ViewportShot{Status: "error", Error: capture.ErrTagNavigation},
		Mobile:  &models.ViewportShot{Status: "error", Error: capture.ErrTagNavigation},
	}
	if cap == nil {
		return s
	}
	if shot := cap.Shots[models.ViewportDesktop]; shot != nil {
		s.Desktop = shot
	}
	if shot := cap.Shots[models.ViewportMobile]; shot != nil {
		s.Mobile = shot
	}
	return s
}

func collectShotErrors(cap *models.Capture, tr *trace) {
	for _, vp := range []models.Viewport{models.ViewportDesktop, models.ViewportMobile} {
		if shot := cap.Shots[vp]; shot != nil && shot.Error != "" {
			tr.fail(captureErrorTag(shot.Error))
		}
	}
}

// captureErrorTag folds a per-viewport shot tag into the capture-level
// debug taxonomy. The raw shot tag stays on the screenshot entry.
func captureErrorTag(shotTag string) string {
	switch shotTag {
	case capture.ErrTagTimeoutDOM, capture.ErrTagScreenshot:
		return "capture_timeout"
	case capture.ErrTagEngineCrash:
		return "capture_engine_crash"
	case capture.ErrTagNavigation:
		return "capture_navigation_error"
	}
	return shotTag
}

func unavailableCapture(url string) *models.Capture {
	return &models.Capture{
		Status: models.CaptureError,
		URL:    url,
		Shots: map[models.Viewport]*models.ViewportShot{
			models.ViewportDesktop: {Status: "error", Error: capture.ErrTagEngineCrash},
			models.ViewportMobile:  {Status: "error", Error: capture.ErrTagEngineCrash},
		},
		CapturedAt: time.Now(),
	}
}

func issueCount(out decision.Output) int {
	n := 1
	if out.Secondary != nil {
		n++
	}
	return n
}

func errorList(tr *trace) []string {
	if tr.errors == nil {
		return []string{}
	}
	return tr.errors
}
