package classify

import (
	"testing"

	"decisionscan/pkg/models"
)

func TestBrandContext_Enterprise(t *testing.T) {
	text := `Pricing built for businesses of all sizes.
Contact sales for a custom SLA.
Careers Investors Newsroom Partners
SOC 2 and GDPR compliant. Español Deutsch`
	bc := BrandContext(text, "https://stripe.com/pricing")

	if bc.BrandMaturity != models.MaturityEnterprise {
		t.Errorf("maturity = %q, want enterprise", bc.BrandMaturity)
	}
	if bc.AnalysisMode != models.ModeEnterpriseContextAware {
		t.Errorf("mode = %q, want enterprise_context_aware", bc.AnalysisMode)
	}
	if bc.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", bc.Confidence)
	}
}

func TestBrandContext_NewBrand(t *testing.T) {
	bc := BrandContext("Ship faster with our new tool. Start free trial.", "https://tinystartup.io")
	if bc.BrandMaturity != models.MaturityNew {
		t.Errorf("maturity = %q, want new", bc.BrandMaturity)
	}
	if bc.AnalysisMode != models.ModeGeneric {
		t.Errorf("mode = %q, want generic", bc.AnalysisMode)
	}
}

func TestStage_Commitment(t *testing.T) {
	f := &models.PageFeatures{HasCheckoutOrForm: true, HasPricing: true}
	sa := Stage(f)
	if sa.Stage != models.StageCommitment {
		t.Errorf("stage = %q, want commitment", sa.Stage)
	}
	// Two confirming signals: 0.5 + 2*0.1.
	if sa.Confidence < 0.69 || sa.Confidence > 0.71 {
		t.Errorf("confidence = %v, want ~0.7", sa.Confidence)
	}
}

func TestStage_Evaluation(t *testing.T) {
	f := &models.PageFeatures{HasPricing: true, HasComparisonTable: true}
	if sa := Stage(f); sa.Stage != models.StageEvaluation {
		t.Errorf("stage = %q, want evaluation", sa.Stage)
	}
}

func TestStage_Orientation(t *testing.T) {
	f := &models.PageFeatures{HasEducationalCopy: true}
	sa := Stage(f)
	if sa.Stage != models.StageOrientation {
		t.Errorf("stage = %q, want orientation", sa.Stage)
	}
}

func TestStage_SenseMakingSoftCTA(t *testing.T) {
	f := &models.PageFeatures{
		Headlines: []string{"Do more with less"},
		CTAs:      []models.CTA{{Text: "learn more", Location: "hero"}},
	}
	if sa := Stage(f); sa.Stage != models.StageSenseMaking {
		t.Errorf("stage = %q, want sense_making", sa.Stage)
	}
}

func TestStage_PostDecision(t *testing.T) {
	f := &models.PageFeatures{HasOnboardingCues: true}
	if sa := Stage(f); sa.Stage != models.StagePostDecision {
		t.Errorf("stage = %q, want post_decision", sa.Stage)
	}
}

func TestStage_ConfidenceCap(t *testing.T) {
	f := &models.PageFeatures{
		HasCheckoutOrForm: true,
		HasPricing:        true,
		CTAs: []models.CTA{
			{Text: "buy now"}, {Text: "checkout"}, {Text: "sign up"},
			{Text: "subscribe"}, {Text: "add to cart"}, {Text: "order now"},
		},
	}
	if sa := Stage(f); sa.Confidence > 0.95 {
		t.Errorf("confidence = %v, want capped at 0.95", sa.Confidence)
	}
}
