// Package report composes the seven-section decision report. The machine
// twin is assembled deterministically first; prose generation through the
// LLM runs only after the twin validates, and a template fallback keeps
// the response complete when the LLM is unavailable.
package report

import (
	"fmt"
	"strings"

	"decisionscan/pkg/models"
)

// Input is everything the composer consults.
type Input struct {
	Goal      models.Goal
	Locale    models.Locale
	URL       string
	Primary   models.DecisionOutcome
	Secondary *models.DecisionOutcome
	Stage     models.StageAssessment
	Brand     models.BrandContext
	Features  *models.PageFeatures
	PageType  models.PageTypeResult
	History   *models.DecisionHistoryInsight
}

// BuildSections assembles the machine-readable twin. It is deterministic
// and never fails; every section is populated.
func BuildSections(in Input) models.ReportSections {
	var s models.ReportSections

	s.ExecutiveSummary = fmt.Sprintf(
		"The primary decision blocker on this page is %s (%s friction, %d%% confidence). %s",
		in.Primary.Blocker, in.Primary.Category, in.Primary.Confidence, in.Primary.Why)

	s.ContextSnapshot = fmt.Sprintf(
		"Business type reads as %s (%.0f%% confidence) with %s intent. "+
			"The visitor is in the %s stage (%.0f%% confidence), and the brand presents as %s.",
		in.PageType.Type, in.PageType.Confidence*100, pageIntent(in.Features),
		in.Stage.Stage, in.Stage.Confidence*100, in.Brand.BrandMaturity)

	s.FailureBreakdown = failureBreakdown(in)

	s.WhatToFixFirst = fmt.Sprintf(
		"%s This matters most right now because the blocker is rated %s at the %s stage; "+
			"left in place, it keeps converting-ready visitors from acting.",
		in.Primary.WhatToChangeFirst, in.Primary.Severity, in.Stage.Stage)

	s.MessageRecommendations, s.StructureRecommendations, s.TimingRecommendations = recommendations(in)

	s.WhatThisWillImprove = fmt.Sprintf(
		"Addressing %s should produce a directional improvement in the %s band. "+
			"This is an expected behavioral shift, not a guaranteed result.",
		in.Primary.Blocker, in.Primary.ExpectedLift)

	s.NextDiagnosticStep = nextStep(in)
	return s
}

// ValidateSections gates prose generation: the twin must carry every
// section before the LLM is allowed to rewrite it.
func ValidateSections(s models.ReportSections) error {
	checks := map[string]string{
		"executive_decision_summary": s.ExecutiveSummary,
		"context_snapshot":           s.ContextSnapshot,
		"decision_failure_breakdown": s.FailureBreakdown,
		"what_to_fix_first":          s.WhatToFixFirst,
		"what_this_will_improve":     s.WhatThisWillImprove,
		"next_diagnostic_step":       s.NextDiagnosticStep,
	}
	for name, v := range checks {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("internal_invariant_violation: section %s is empty", name)
		}
	}
	if len(s.MessageRecommendations) == 0 && len(s.StructureRecommendations) == 0 && len(s.TimingRecommendations) == 0 {
		return fmt.Errorf("internal_invariant_violation: no recommendations")
	}
	return nil
}

func failureBreakdown(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Primary: %s. %s %s", in.Primary.Blocker, in.Primary.Why, in.Primary.Where)
	if in.Secondary != nil {
		fmt.Fprintf(&b,
			" Secondary: %s. %s These two interact: the %s friction makes the %s friction harder to overcome, "+
				"so fixing the primary first reduces both.",
			in.Secondary.Blocker, in.Secondary.Why, in.Primary.Category, in.Secondary.Category)
	}
	return b.String()
}

func recommendations(in Input) (message, structure, timing []string) {
	blocker := in.Primary.Blocker

	message = append(message, fmt.Sprintf(
		"Align the headline promise with the %s goal so the first message answers the %s barrier.",
		in.Goal, blocker))
	structure = append(structure, fmt.Sprintf(
		"Reorder the page so the answer to %s appears before the primary call-to-action.", blocker))
	timing = append(timing, fmt.Sprintf(
		"Delay the hard ask until the %s-stage visitor has seen the evidence that addresses %s.",
		in.Stage.Stage, blocker))

	switch models.CategoryOf(blocker) {
	case models.CategoryCognitive:
		message = append(message, "Cut competing claims to one idea per screen; clarity beats completeness here.")
		structure = append(structure, "Collapse secondary content behind progressive disclosure so the main path stays short.")
	case models.CategoryTrust:
		message = append(message, "Replace broad claims with one verifiable, specific proof point near the action.")
		structure = append(structure, "Move the strongest proof element adjacent to the call-to-action rather than into a separate section.")
	case models.CategoryRisk:
		message = append(message, "State the reversal terms in plain words where the commitment is requested.")
		timing = append(timing, "Offer a low-stakes intermediate step before the full commitment.")
	case models.CategoryIdentity:
		message = append(message, "Mirror the visitor's own vocabulary and situation in the benefit copy.")
		structure = append(structure, "Lead the social proof with buyers the target visitor resembles.")
	}

	if in.Secondary != nil {
		timing = append(timing, fmt.Sprintf(
			"After the primary fix settles, address %s; fixing both at once obscures which change worked.",
			in.Secondary.Blocker))
	}
	return message, structure, timing
}

// nextStep builds section 7. The psychology reading of the current
// analysis is always present; history commentary joins it only when prior
// records exist, and critical fatigue converts the deeper-analysis offer
// into a redesign call.
func nextStep(in Input) string {
	var b strings.Builder
	b.WriteString(psychologyInsight(in))

	if in.History != nil {
		if in.History.TrajectorySummary != "" {
			fmt.Fprintf(&b, " History for this page: %s.", in.History.TrajectorySummary)
		}
		if in.History.Fatigue.Level == models.FatigueCritical {
			b.WriteString(" Repeated analyses keep surfacing the same barrier; rather than another targeted fix, a structural redesign of this page is the recommended next step.")
			return b.String()
		}
		if in.History.Fatigue.Level == models.FatigueHigh {
			fmt.Fprintf(&b, " %s", in.History.Fatigue.Recommendation)
		}
	}

	b.WriteString(" A deeper diagnostic pass, capturing the pages before and after this one in the journey, would confirm where the friction actually begins.")
	return b.String()
}

// psychologyInsight derives the always-present reading from the current
// analysis alone.
func psychologyInsight(in Input) string {
	switch models.CategoryOf(in.Primary.Blocker) {
	case models.CategoryCognitive:
		return "Psychologically, visitors here are failing at the comprehension step: the effort of working out the offer exceeds the motivation they arrive with."
	case models.CategoryTrust:
		return "Psychologically, the page asks for belief before it has supplied evidence, and visitors resolve that tension by leaving rather than investigating."
	case models.CategoryRisk:
		return "Psychologically, the perceived downside of acting outweighs the promised upside, so inaction feels like the safer choice."
	default:
		return "Psychologically, visitors do not recognize this offer as meant for someone like them, so even a clear message fails to engage."
	}
}

func pageIntent(f *models.PageFeatures) models.PageIntent {
	if f == nil {
		return models.IntentOther
	}
	return f.PageIntent
}
