package classify

import (
	"fmt"

	"decisionscan/pkg/models"
)

// Stage runs the ordered rule ladder over the feature set. The first rule
// whose precondition holds decides the stage; later rules never override.
// Confidence is 0.5 plus 0.1 per confirming signal, capped at 0.95.
func Stage(f *models.PageFeatures) models.StageAssessment {
	strongCTA := hasStrongCTA(f)

	switch {
	case f.HasCheckoutOrForm && f.HasPricing:
		signals := []string{"checkout_or_form_present", "pricing_visible"}
		if strongCTA {
			signals = append(signals, "strong_cta")
		}
		return assessment(models.StageCommitment, signals)

	case f.HasComparisonTable || f.HasPricing:
		var signals []string
		if f.HasComparisonTable {
			signals = append(signals, "comparison_table")
		}
		if f.HasPricing {
			signals = append(signals, "pricing_visible")
		}
		return assessment(models.StageEvaluation, signals)

	case f.HasEducationalCopy && !strongCTA:
		signals := []string{"educational_copy_dominates"}
		if len(f.CTAs) == 0 {
			signals = append(signals, "no_cta")
		}
		return assessment(models.StageOrientation, signals)

	case len(f.CTAs) > 0 && !strongCTA:
		signals := []string{"soft_cta"}
		if len(f.Headlines) > 0 {
			signals = append(signals, fmt.Sprintf("headlines_%d", len(f.Headlines)))
		}
		return assessment(models.StageSenseMaking, signals)

	case f.HasOnboardingCues:
		return assessment(models.StagePostDecision, []string{"onboarding_cues"})

	default:
		signals := []string{"default_rule"}
		if len(f.Headlines) > 0 {
			signals = append(signals, fmt.Sprintf("headlines_%d", len(f.Headlines)))
		}
		return assessment(models.StageSenseMaking, signals)
	}
}

// hasStrongCTA reports a hard-commitment call to action, as opposed to the
// soft learn-more family.
func hasStrongCTA(f *models.PageFeatures) bool {
	strong := map[string]bool{
		"buy now": true, "buy": true, "add to cart": true, "checkout": true,
		"order now": true, "start free trial": true, "start trial": true,
		"sign up": true, "signup": true, "subscribe": true, "book now": true,
		"book appointment": true, "book an appointment": true, "register": true,
		"create account": true,
	}
	for _, c := range f.CTAs {
		if strong[c.Text] {
			return true
		}
	}
	return false
}

func assessment(stage models.Stage, signals []string) models.StageAssessment {
	confidence := 0.5 + 0.1*float64(len(signals))
	if confidence > 0.95 {
		confidence = 0.95
	}
	return models.StageAssessment{Stage: stage, Confidence: confidence, Signals: signals}
}
