package report

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"decisionscan/pkg/models"
)

func sampleInput() Input {
	return Input{
		Goal:   models.GoalLeads,
		Locale: models.LocaleEN,
		URL:    "https://example.com/",
		Primary: models.DecisionOutcome{
			Blocker:           models.BlockerOutcomeUnclear,
			Category:          models.CategoryCognitive,
			Why:               "Visitors cannot predict what happens after they act, so they defer the decision.",
			Where:             "Headline and primary call-to-action.",
			WhatToChangeFirst: "Rewrite the headline to name the concrete outcome.",
			Confidence:        62,
			ExpectedLift:      models.LiftHigh,
			Severity:          models.SeverityCritical,
		},
		Stage:    models.StageAssessment{Stage: models.StageEvaluation, Confidence: 0.7},
		Brand:    models.BrandContext{BrandMaturity: models.MaturityGrowing, AnalysisMode: models.ModeGeneric},
		Features: &models.PageFeatures{PageIntent: models.IntentSignup},
		PageType: models.PageTypeResult{Type: models.PageSaaSPricing, Confidence: 0.8},
	}
}

func TestBuildSections_AllPopulated(t *testing.T) {
	s := BuildSections(sampleInput())
	if err := ValidateSections(s); err != nil {
		t.Fatalf("ValidateSections: %v", err)
	}
	if !strings.Contains(s.ExecutiveSummary, "Outcome Unclear") {
		t.Error("executive summary should name the primary blocker")
	}
	if !strings.Contains(s.WhatThisWillImprove, string(models.LiftHigh)) {
		t.Error("improvement section should carry the lift tier")
	}
	if strings.Contains(s.WhatThisWillImprove, "guaranteed result") &&
		!strings.Contains(s.WhatThisWillImprove, "not a guaranteed result") {
		t.Error("improvement section must stay directional")
	}
}

func TestBuildSections_SecondaryInteraction(t *testing.T) {
	in := sampleInput()
	in.Secondary = &models.DecisionOutcome{
		Blocker:  models.BlockerTrustGap,
		Category: models.CategoryTrust,
		Why:      "Nothing vouches for the claim at the action point.",
	}
	s := BuildSections(in)
	if !strings.Contains(s.FailureBreakdown, "Trust Gap") {
		t.Error("breakdown should describe the secondary blocker")
	}
	if !strings.Contains(s.FailureBreakdown, "interact") {
		t.Error("breakdown should describe the interaction")
	}
}

func TestNextStep_PsychologyAlwaysPresent(t *testing.T) {
	s := BuildSections(sampleInput())
	if !strings.Contains(s.NextDiagnosticStep, "Psychologically") {
		t.Error("section 7 must always carry the psychology insight")
	}
	if strings.Contains(s.NextDiagnosticStep, "History for this page") {
		t.Error("history commentary requires prior records")
	}
}

func TestNextStep_CriticalFatigueRedesignCall(t *testing.T) {
	in := sampleInput()
	in.History = &models.DecisionHistoryInsight{
		Fatigue:           models.DecisionFatigueAnalysis{Level: models.FatigueCritical},
		TrajectorySummary: "Outcome Unclear persistent",
	}
	s := BuildSections(in)
	if !strings.Contains(s.NextDiagnosticStep, "redesign") {
		t.Error("critical fatigue should convert the next step into a redesign call")
	}
	if strings.Contains(s.NextDiagnosticStep, "deeper diagnostic pass") {
		t.Error("the deeper-analysis offer is disabled under critical fatigue")
	}
}

func TestFallbackProse_SevenSections(t *testing.T) {
	for _, locale := range []models.Locale{models.LocaleEN, models.LocaleFA, models.LocaleTR} {
		in := sampleInput()
		in.Locale = locale
		prose := FallbackProse(BuildSections(in), locale)
		if n := strings.Count(prose, "## "); n != 7 {
			t.Errorf("locale %s: %d sections, want 7", locale, n)
		}
	}
}

func TestCheckProse(t *testing.T) {
	good := "## Report\n\nThe primary blocker is Outcome Unclear. Address the headline first."
	if err := CheckProse(good, models.ModeGeneric); err != nil {
		t.Errorf("clean prose rejected: %v", err)
	}

	cases := []struct {
		name  string
		prose string
		mode  models.AnalysisMode
	}{
		{"superlative", "This amazing page will convert.", models.ModeGeneric},
		{"roi promise", "This change will increase your revenue by 40 percent, guaranteed 40% uplift.", models.ModeGeneric},
		{"empty", "   ", models.ModeGeneric},
		{"enterprise trust verdict", "The page lacks trust signals near the button.", models.ModeEnterpriseContextAware},
	}
	for _, tc := range cases {
		if err := CheckProse(tc.prose, tc.mode); err == nil {
			t.Errorf("%s: should be rejected", tc.name)
		}
	}

	// The same trust phrasing is allowed outside enterprise mode.
	if err := CheckProse("The page lacks trust signals near the button.", models.ModeGeneric); err != nil {
		t.Errorf("generic mode should allow trust verdicts: %v", err)
	}
}

// scriptedProvider returns canned prose or an error.
type scriptedProvider struct {
	response string
	err      error
}

func (p *scriptedProvider) GenerateResponse(ctx context.Context, prompt, system string, options map[string]interface{}) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func TestCompose_LLMPath(t *testing.T) {
	prose := "## 1. Executive Decision Summary\n\nClear diagnostic prose in seven sections."
	c := NewComposer(&scriptedProvider{response: prose}, 0)
	res := c.Compose(context.Background(), sampleInput())

	if res.Prose != prose {
		t.Errorf("prose = %q, want the model output", res.Prose)
	}
	if res.ErrorTag != "" {
		t.Errorf("unexpected error tag %q", res.ErrorTag)
	}
}

func TestCompose_FallbackOnLLMError(t *testing.T) {
	c := NewComposer(&scriptedProvider{err: fmt.Errorf("connection refused")}, 0)
	res := c.Compose(context.Background(), sampleInput())

	if res.ErrorTag != "llm_transport_error" {
		t.Errorf("tag = %q, want llm_transport_error", res.ErrorTag)
	}
	if strings.Count(res.Prose, "## ") != 7 {
		t.Error("fallback prose must still contain all seven sections")
	}
}

// stalledProvider blocks until its context expires, then returns the
// wrapped deadline error the way the real client does.
type stalledProvider struct{}

func (stalledProvider) GenerateResponse(ctx context.Context, prompt, system string, options map[string]interface{}) (string, error) {
	<-ctx.Done()
	return "", fmt.Errorf("gemini generation failed: %w", ctx.Err())
}

func TestCompose_TimeoutTagged(t *testing.T) {
	c := NewComposer(stalledProvider{}, 20*time.Millisecond)
	res := c.Compose(context.Background(), sampleInput())

	if res.ErrorTag != "llm_timeout" {
		t.Errorf("tag = %q, want llm_timeout", res.ErrorTag)
	}
	if strings.Count(res.Prose, "## ") != 7 {
		t.Error("fallback prose must still contain all seven sections")
	}
}

func TestCompose_FallbackOnBannedOutput(t *testing.T) {
	c := NewComposer(&scriptedProvider{response: "This amazing page is incredible."}, 0)
	res := c.Compose(context.Background(), sampleInput())

	if res.ErrorTag == "" {
		t.Error("banned output should surface an error tag")
	}
	if strings.Contains(res.Prose, "amazing") {
		t.Error("banned output must not reach the response")
	}
}

func TestCompose_NilProviderUsesFallback(t *testing.T) {
	res := NewComposer(nil, 0).Compose(context.Background(), sampleInput())
	if res.ErrorTag != "" {
		t.Errorf("nil provider is not an error, got tag %q", res.ErrorTag)
	}
	if strings.Count(res.Prose, "## ") != 7 {
		t.Error("fallback prose must contain all seven sections")
	}
}
