package models

import "time"

// Blocker names a psychological reason a visitor fails to act.
type Blocker string

const (
	BlockerOutcomeUnclear     Blocker = "Outcome Unclear"
	BlockerTrustGap           Blocker = "Trust Gap"
	BlockerRiskNotAddressed   Blocker = "Risk Not Addressed"
	BlockerEffortTooHigh      Blocker = "Effort Too High"
	BlockerCommitmentAnxiety  Blocker = "Commitment Anxiety"
	BlockerMotivationMismatch Blocker = "Motivation Mismatch"
	BlockerIdentityMisfit     Blocker = "Identity Misfit"
)

// AllBlockers lists the seven blockers in ranking-matrix order.
var AllBlockers = []Blocker{
	BlockerOutcomeUnclear,
	BlockerTrustGap,
	BlockerRiskNotAddressed,
	BlockerEffortTooHigh,
	BlockerCommitmentAnxiety,
	BlockerMotivationMismatch,
	BlockerIdentityMisfit,
}

// BlockerCategory groups blockers by failure family.
type BlockerCategory string

const (
	CategoryCognitive BlockerCategory = "cognitive"
	CategoryTrust     BlockerCategory = "trust"
	CategoryRisk      BlockerCategory = "risk"
	CategoryIdentity  BlockerCategory = "identity"
)

// CategoryOf returns the fixed blocker-to-category mapping.
func CategoryOf(b Blocker) BlockerCategory {
	switch b {
	case BlockerOutcomeUnclear, BlockerEffortTooHigh:
		return CategoryCognitive
	case BlockerTrustGap:
		return CategoryTrust
	case BlockerRiskNotAddressed, BlockerCommitmentAnxiety:
		return CategoryRisk
	default:
		return CategoryIdentity
	}
}

// Stage is the inferred mental phase of the visitor.
type Stage string

const (
	StageOrientation  Stage = "orientation"
	StageSenseMaking  Stage = "sense_making"
	StageEvaluation   Stage = "evaluation"
	StageCommitment   Stage = "commitment"
	StagePostDecision Stage = "post_decision"
)

// FrictionSeverity qualifies a blocker at a given stage.
type FrictionSeverity string

const (
	SeverityNatural    FrictionSeverity = "natural"
	SeverityAcceptable FrictionSeverity = "acceptable"
	SeverityWarning    FrictionSeverity = "warning"
	SeverityCritical   FrictionSeverity = "critical"
	SeverityHighRisk   FrictionSeverity = "high_risk"
)

// LiftTier is a directional expected-improvement band, never a guarantee.
type LiftTier string

const (
	LiftLow    LiftTier = "Low (+0-10%)"
	LiftMedium LiftTier = "Medium (+10-25%)"
	LiftHigh   LiftTier = "High (+25%+)"
)

// Level is a three-point ordinal used by every evidence extractor.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Ord maps a Level onto the 0..2 ordinal scale used by the merger.
func (l Level) Ord() int {
	switch l {
	case LevelMedium:
		return 1
	case LevelHigh:
		return 2
	default:
		return 0
	}
}

// LevelFromOrd is the inverse of Ord, with out-of-range values clamped.
func LevelFromOrd(n int) Level {
	switch {
	case n <= 0:
		return LevelLow
	case n == 1:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// DecisionSignals is the uniform evidence record each extractor emits.
type DecisionSignals struct {
	PromiseStrength  Level `json:"promise_strength"`
	EmotionalTone    Level `json:"emotional_tone"`
	ReassuranceLevel Level `json:"reassurance_level"`
	RiskExposure     Level `json:"risk_exposure"`
	CognitiveLoad    Level `json:"cognitive_load"`
	PressureLevel    Level `json:"pressure_level"`
	ExpectationGap   Level `json:"expectation_gap,omitempty"`
}

// PageType is the coarse business category of the analyzed page.
type PageType string

const (
	PageEcommerceProduct     PageType = "ecommerce_product"
	PageSaaSPricing          PageType = "saas_pricing"
	PageLocalService         PageType = "local_service"
	PageContentInformational PageType = "content_informational"
	PageLandingGeneric       PageType = "landing_generic"
	PageOther                PageType = "other"
)

// PageIntent is what the page is structurally asking the visitor to do.
type PageIntent string

const (
	IntentPurchase          PageIntent = "purchase"
	IntentSignup            PageIntent = "signup"
	IntentPricingComparison PageIntent = "pricing_comparison"
	IntentLeadCapture       PageIntent = "lead_capture"
	IntentInform            PageIntent = "inform"
	IntentOther             PageIntent = "other"
)

// BlockKind classifies a text block during feature extraction.
type BlockKind string

const (
	BlockHeadline     BlockKind = "headline"
	BlockParagraph    BlockKind = "paragraph"
	BlockCTACandidate BlockKind = "cta-candidate"
	BlockList         BlockKind = "list"
	BlockNav          BlockKind = "nav"
	BlockFooter       BlockKind = "footer"
)

// TextBlock is one classified block of page text.
type TextBlock struct {
	Kind     BlockKind `json:"kind"`
	Text     string    `json:"text"`
	Position int       `json:"position"`
}

// CTA is a detected call-to-action with its coarse location.
type CTA struct {
	Text     string `json:"text"`
	Location string `json:"location"` // hero, body, footer
}

// TrustSignalKind enumerates the trust cues the extractor looks for.
type TrustSignalKind string

const (
	TrustGuarantee   TrustSignalKind = "guarantee"
	TrustSecurity    TrustSignalKind = "security"
	TrustTestimonial TrustSignalKind = "testimonial"
	TrustLogo        TrustSignalKind = "logo"
)

// TrustSignal is one detected trust cue with the phrase that triggered it.
type TrustSignal struct {
	Kind   TrustSignalKind `json:"kind"`
	Phrase string          `json:"phrase"`
}

// PageFeatures is the deterministic structured derivation from text + URL.
type PageFeatures struct {
	TrustScore    int `json:"trustScore"`    // [0,100]
	FrictionScore int `json:"frictionScore"` // [0,100]
	ClarityScore  int `json:"clarityScore"`  // [0,100]

	PageType           PageType   `json:"pageType"`
	PageTypeConfidence float64    `json:"pageTypeConfidence"` // [0,1]
	PageIntent         PageIntent `json:"pageIntent"`

	Headlines    []string      `json:"headlines"`
	CTAs         []CTA         `json:"ctas"`
	TrustSignals []TrustSignal `json:"trustSignals"`
	Blocks       []TextBlock   `json:"-"`

	HasPricing         bool `json:"hasPricing"`
	HasCheckoutOrForm  bool `json:"hasCheckoutOrForm"`
	HasEducationalCopy bool `json:"hasEducationalCopy"`
	HasComparisonTable bool `json:"hasComparisonTable"`
	HasOnboardingCues  bool `json:"hasOnboardingCues"`

	WordCount int `json:"wordCount"`
}

// BrandMaturity is the inferred maturity of the brand behind the page.
type BrandMaturity string

const (
	MaturityNew         BrandMaturity = "new"
	MaturityGrowing     BrandMaturity = "growing"
	MaturityEstablished BrandMaturity = "established"
	MaturityEnterprise  BrandMaturity = "enterprise"
)

// AnalysisMode switches the decision engine between its generic and
// enterprise-aware vocabularies.
type AnalysisMode string

const (
	ModeGeneric                AnalysisMode = "generic"
	ModeEnterpriseContextAware AnalysisMode = "enterprise_context_aware"
)

// BrandContext is the classifier's brand-level output.
type BrandContext struct {
	BrandMaturity BrandMaturity `json:"brandMaturity"`
	Confidence    float64       `json:"confidence"` // [0,1]
	AnalysisMode  AnalysisMode  `json:"analysisMode"`
}

// StageAssessment names the inferred decision stage and the cues behind it.
type StageAssessment struct {
	Stage      Stage    `json:"stage"`
	Confidence float64  `json:"confidence"` // [0,1]
	Signals    []string `json:"signals"`
}

// DecisionOutcome is one ranked blocker with its diagnosis.
type DecisionOutcome struct {
	Blocker           Blocker          `json:"blocker"`
	Category          BlockerCategory  `json:"category"`
	Why               string           `json:"why"`
	Where             string           `json:"where"`
	WhatToChangeFirst string           `json:"whatToChangeFirst"`
	Confidence        int              `json:"confidence"` // [0,100]
	ExpectedLift      LiftTier         `json:"expectedLift"`
	Severity          FrictionSeverity `json:"severity"`
	FindingsLimited   bool             `json:"findingsLimited,omitempty"`
}

// ArtifactRef is a handle to a persisted screenshot. The artifact store
// owns the bytes; consumers only hold the handle.
type ArtifactRef struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	DataURI  string `json:"data_uri,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// CaptureStatus summarizes a headless render attempt.
type CaptureStatus string

const (
	CaptureOK       CaptureStatus = "ok"
	CaptureDegraded CaptureStatus = "degraded"
	CaptureError    CaptureStatus = "error"
)

// Viewport is one of the two render targets.
type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportMobile  Viewport = "mobile"
)

// ViewportShot is the per-viewport capture result.
type ViewportShot struct {
	Status   string       `json:"status"` // ok | error
	Artifact *ArtifactRef `json:"-"`
	URL      string       `json:"url,omitempty"`
	DataURI  string       `json:"data_uri,omitempty"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Error    string       `json:"error,omitempty"`
}

// Capture is the immutable result of rendering one URL at both viewports.
type Capture struct {
	Status        CaptureStatus              `json:"status"`
	URL           string                     `json:"url"`
	Shots         map[Viewport]*ViewportShot `json:"shots"`
	ExtractedText string                     `json:"extractedText"`
	CapturedAt    time.Time                  `json:"capturedAt"`
}

// HistoricalOutcome is one memory-layer record for a context.
type HistoricalOutcome struct {
	ContextID string          `json:"contextId"`
	Outcome   DecisionOutcome `json:"outcome"`
	Stage     StageAssessment `json:"stage"`
	Timestamp time.Time       `json:"timestamp"`
}

// TrajectoryClass describes how an observed blocker evolves over repeats.
type TrajectoryClass string

const (
	TrajectoryPersistent TrajectoryClass = "persistent"
	TrajectoryWeakening  TrajectoryClass = "weakening"
	TrajectoryResolved   TrajectoryClass = "resolved"
	TrajectoryEmerging   TrajectoryClass = "emerging"
	TrajectoryShifting   TrajectoryClass = "shifting"
)

// OutcomeTrajectory classifies one blocker's history within a context.
type OutcomeTrajectory struct {
	Blocker     Blocker         `json:"blocker"`
	Class       TrajectoryClass `json:"class"`
	Occurrences int             `json:"occurrences"`
	Share       float64         `json:"share"` // fraction of analyses naming it
}

// FatigueLevel grades repeated exposure to the same cognitive friction.
type FatigueLevel string

const (
	FatigueNone     FatigueLevel = "none"
	FatigueLow      FatigueLevel = "low"
	FatigueMedium   FatigueLevel = "medium"
	FatigueHigh     FatigueLevel = "high"
	FatigueCritical FatigueLevel = "critical"
)

// DecisionFatigueAnalysis reports fatigue accumulated across analyses.
type DecisionFatigueAnalysis struct {
	Level          FatigueLevel `json:"level"`
	Indicators     []string     `json:"indicators"`
	Recommendation string       `json:"recommendation"`
}

// TrustTrend and TrustConsistency describe the trust-category trajectory.
type TrustTrend string

const (
	TrustImproving TrustTrend = "improving"
	TrustStable    TrustTrend = "stable"
	TrustWorsening TrustTrend = "worsening"
)

type TrustConsistency string

const (
	ConsistencyConsistent   TrustConsistency = "consistent"
	ConsistencyInconsistent TrustConsistency = "inconsistent"
	ConsistencyImproving    TrustConsistency = "improving"
)

// TrustDynamics summarizes trust-category movement for a context.
type TrustDynamics struct {
	Trend          TrustTrend       `json:"trend"`
	Consistency    TrustConsistency `json:"consistency"`
	Recommendation string           `json:"recommendation"`
}

// DecisionHistoryInsight is the memory layer's roll-up for the report.
type DecisionHistoryInsight struct {
	WhatFailed            []string                `json:"whatFailed"`
	WhatImproved          []string                `json:"whatImproved"`
	WhatRemainsUnresolved []string                `json:"whatRemainsUnresolved"`
	Fatigue               DecisionFatigueAnalysis `json:"fatigue"`
	TrustDynamics         TrustDynamics           `json:"trustDynamics"`
	TrajectorySummary     string                  `json:"trajectorySummary"`
}

// ReportSections is the machine-readable twin of the prose report.
// Section order is fixed; the prose layer may only run once this validates.
type ReportSections struct {
	ExecutiveSummary         string   `json:"executive_decision_summary"`
	ContextSnapshot          string   `json:"context_snapshot"`
	FailureBreakdown         string   `json:"decision_failure_breakdown"`
	WhatToFixFirst           string   `json:"what_to_fix_first"`
	MessageRecommendations   []string `json:"message_level_recommendations"`
	StructureRecommendations []string `json:"structure_level_recommendations"`
	TimingRecommendations    []string `json:"timing_flow_recommendations"`
	WhatThisWillImprove      string   `json:"what_this_will_improve"`
	NextDiagnosticStep       string   `json:"next_diagnostic_step"`
}

// Summary carries the top-line counters for the response envelope.
type Summary struct {
	URL            string `json:"url,omitempty"`
	Goal           Goal   `json:"goal"`
	Locale         Locale `json:"locale"`
	IssuesCount    int    `json:"issues_count"`
	QuickWinsCount int    `json:"quick_wins_count"`
}

// PageTypeResult pairs the detected page type with its confidence.
type PageTypeResult struct {
	Type       PageType `json:"type"`
	Confidence float64  `json:"confidence"`
}

// DebugInfo is the pipeline trace attached to every response.
type DebugInfo struct {
	PipelineVersion string   `json:"pipeline_version"`
	Steps           []string `json:"steps"`
	Errors          []string `json:"errors"`
}

// Screenshots holds both viewport shots. In URL mode it is never nil and
// both viewport entries are always present.
type Screenshots struct {
	Desktop *ViewportShot `json:"desktop"`
	Mobile  *ViewportShot `json:"mobile"`
}

// ScanResponse is the full wire response for one analysis.
type ScanResponse struct {
	Status         string                  `json:"status"` // ok | error
	Mode           Mode                    `json:"mode"`
	AnalysisStatus string                  `json:"analysisStatus"` // ok | degraded | error
	Summary        Summary                 `json:"summary"`
	HumanReport    string                  `json:"human_report"`
	Sections       ReportSections          `json:"report_sections"`
	Primary        DecisionOutcome         `json:"primary_outcome"`
	Secondary      *DecisionOutcome        `json:"secondary_outcome"`
	Stage          StageAssessment         `json:"stage_assessment"`
	Brand          BrandContext            `json:"brand_context"`
	PageType       PageTypeResult          `json:"page_type"`
	HistoryInsight *DecisionHistoryInsight `json:"decision_history_insight"`
	Screenshots    *Screenshots            `json:"screenshots,omitempty"`
	Debug          DebugInfo               `json:"debug"`
}
