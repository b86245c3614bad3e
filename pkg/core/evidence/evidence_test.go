package evidence

import (
	"testing"

	"decisionscan/pkg/models"
)

func TestLanding_MapsScores(t *testing.T) {
	f := &models.PageFeatures{
		TrustScore:    80,
		FrictionScore: 20,
		ClarityScore:  75,
		TrustSignals: []models.TrustSignal{
			{Kind: models.TrustGuarantee}, {Kind: models.TrustTestimonial}, {Kind: models.TrustLogo},
		},
	}
	s := Landing(f)

	if s.ReassuranceLevel != models.LevelHigh {
		t.Errorf("reassurance = %q, want high from trustScore 80", s.ReassuranceLevel)
	}
	if s.CognitiveLoad != models.LevelLow {
		t.Errorf("load = %q, want low from frictionScore 20", s.CognitiveLoad)
	}
	if s.PromiseStrength != models.LevelHigh {
		t.Errorf("promise = %q, want high from clarityScore 75", s.PromiseStrength)
	}
	if s.RiskExposure != models.LevelLow {
		t.Errorf("risk = %q, want low with three trust signals", s.RiskExposure)
	}
}

func TestAd_UrgentPromises(t *testing.T) {
	s := Ad("Limited offer ends today! Guaranteed results, save 50% instantly. Act fast, only 3 left.")

	if s.PromiseStrength == models.LevelLow {
		t.Error("promise cues should register")
	}
	if s.PressureLevel != models.LevelHigh {
		t.Errorf("pressure = %q, want high from urgency stack", s.PressureLevel)
	}
	if s.RiskExposure != models.LevelHigh {
		t.Errorf("risk = %q, want high: strong promises, no reassurance", s.RiskExposure)
	}
}

func TestPricing_TransparentPlans(t *testing.T) {
	html := `<html><body>
<div class="plan"><h3>Starter</h3><span>$12/mo</span><ul><li>5 projects</li><li>2 users</li><li>Email support</li></ul></div>
<div class="plan"><h3>Pro</h3><span>$29/mo</span><ul><li>Unlimited projects</li><li>10 users</li><li>Priority support</li></ul></div>
</body></html>`
	s := Pricing(html)

	if s.ReassuranceLevel != models.LevelHigh {
		t.Errorf("reassurance = %q, want high with visible prices and features", s.ReassuranceLevel)
	}
	if s.CognitiveLoad != models.LevelLow {
		t.Errorf("load = %q, want low with two plans", s.CognitiveLoad)
	}
	if s.RiskExposure != models.LevelLow {
		t.Errorf("risk = %q, want low with transparent pricing", s.RiskExposure)
	}
}

func TestPricing_OpaqueContactSales(t *testing.T) {
	s := Pricing(`<div class="plan">Enterprise</div><p>Contact us for pricing. Annual contract with setup fee, billed annually.</p>`)

	if s.RiskExposure != models.LevelHigh {
		t.Errorf("risk = %q, want high without visible prices", s.RiskExposure)
	}
	if s.PressureLevel != models.LevelHigh {
		t.Errorf("pressure = %q, want high with commitment terms", s.PressureLevel)
	}
}

func TestMerge_LandingOnly(t *testing.T) {
	landing := models.DecisionSignals{
		PromiseStrength:  models.LevelHigh,
		EmotionalTone:    models.LevelMedium,
		ReassuranceLevel: models.LevelLow,
		RiskExposure:     models.LevelHigh,
		CognitiveLoad:    models.LevelMedium,
		PressureLevel:    models.LevelLow,
	}
	m := Merge(landing, nil, nil)

	if m.Signals != landing {
		t.Errorf("single-source merge must be identity, got %+v", m.Signals)
	}
	if m.Confidence != 0.7 {
		t.Errorf("confidence = %v, want base 0.7 with no pairs", m.Confidence)
	}
	if len(m.Sources) != 1 || m.Sources[0] != "landing" {
		t.Errorf("sources = %v", m.Sources)
	}
}

func TestMerge_AgreementRaisesConfidence(t *testing.T) {
	same := models.DecisionSignals{
		PromiseStrength:  models.LevelMedium,
		EmotionalTone:    models.LevelMedium,
		ReassuranceLevel: models.LevelMedium,
		RiskExposure:     models.LevelMedium,
		CognitiveLoad:    models.LevelMedium,
		PressureLevel:    models.LevelMedium,
	}
	m := Merge(same, &same, nil)

	if m.Confidence != 0.95 {
		t.Errorf("confidence = %v, want clamped at 0.95 with full agreement", m.Confidence)
	}
	want := same
	want.ExpectationGap = models.LevelLow
	if m.Signals != want {
		t.Errorf("agreeing sources should merge to themselves, got %+v", m.Signals)
	}
}

func TestMerge_DisagreementLowersConfidence(t *testing.T) {
	low := models.DecisionSignals{
		PromiseStrength: models.LevelLow, EmotionalTone: models.LevelLow,
		ReassuranceLevel: models.LevelLow, RiskExposure: models.LevelLow,
		CognitiveLoad: models.LevelLow, PressureLevel: models.LevelLow,
	}
	high := models.DecisionSignals{
		PromiseStrength: models.LevelHigh, EmotionalTone: models.LevelHigh,
		ReassuranceLevel: models.LevelHigh, RiskExposure: models.LevelHigh,
		CognitiveLoad: models.LevelHigh, PressureLevel: models.LevelHigh,
	}
	m := Merge(low, &high, nil)

	if m.Confidence != 0.4 {
		t.Errorf("confidence = %v, want clamped at 0.4 with full disagreement", m.Confidence)
	}
}

func TestMerge_AdOvershootOpensExpectationGap(t *testing.T) {
	landing := models.DecisionSignals{PromiseStrength: models.LevelLow}
	ad := models.DecisionSignals{PromiseStrength: models.LevelHigh}

	m := Merge(landing, &ad, nil)
	if m.Signals.ExpectationGap != models.LevelHigh {
		t.Errorf("gap = %q, want high when the ad promises two levels above the page", m.Signals.ExpectationGap)
	}

	medium := models.DecisionSignals{PromiseStrength: models.LevelMedium}
	m = Merge(landing, &medium, nil)
	if m.Signals.ExpectationGap != models.LevelMedium {
		t.Errorf("gap = %q, want medium for a one-level overshoot", m.Signals.ExpectationGap)
	}

	aligned := models.DecisionSignals{PromiseStrength: models.LevelHigh}
	m = Merge(aligned, &aligned, nil)
	if m.Signals.ExpectationGap != models.LevelLow {
		t.Errorf("gap = %q, want low when ad and page promise the same", m.Signals.ExpectationGap)
	}

	m = Merge(landing, nil, nil)
	if m.Signals.ExpectationGap != "" {
		t.Errorf("gap = %q, want unset without ad evidence", m.Signals.ExpectationGap)
	}
}

func TestMerge_WeightedOrdinalMean(t *testing.T) {
	landing := models.DecisionSignals{CognitiveLoad: models.LevelHigh}
	ad := models.DecisionSignals{CognitiveLoad: models.LevelLow}
	pricing := models.DecisionSignals{CognitiveLoad: models.LevelLow}

	m := Merge(landing, &ad, &pricing)
	// 0.6*2 + 0.2*0 + 0.2*0 = 1.2 → rounds to medium.
	if m.Signals.CognitiveLoad != models.LevelMedium {
		t.Errorf("load = %q, want medium from weighted mean 1.2", m.Signals.CognitiveLoad)
	}
}
