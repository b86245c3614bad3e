// Package evidence turns page features, ad copy, and pricing structure
// into uniform DecisionSignals records and merges them with fixed source
// weights.
package evidence

import "decisionscan/pkg/models"

// Landing maps PageFeatures onto DecisionSignals: trust feeds reassurance,
// friction feeds cognitive load, clarity feeds promise strength, and trust
// signal presence inversely feeds risk exposure.
func Landing(f *models.PageFeatures) models.DecisionSignals {
	return models.DecisionSignals{
		PromiseStrength:  levelFromScore(f.ClarityScore),
		EmotionalTone:    landingTone(f),
		ReassuranceLevel: levelFromScore(f.TrustScore),
		RiskExposure:     invertLevel(levelFromCount(len(f.TrustSignals))),
		CognitiveLoad:    levelFromScore(f.FrictionScore),
		PressureLevel:    landingPressure(f),
	}
}

// levelFromScore maps a [0,100] score onto the low/medium/high ordinal.
func levelFromScore(score int) models.Level {
	switch {
	case score >= 67:
		return models.LevelHigh
	case score >= 34:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

func levelFromCount(n int) models.Level {
	switch {
	case n >= 3:
		return models.LevelHigh
	case n >= 1:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

func invertLevel(l models.Level) models.Level {
	return models.LevelFromOrd(2 - l.Ord())
}

func landingTone(f *models.PageFeatures) models.Level {
	// CTA density is the coarse proxy for urgency of tone.
	switch {
	case len(f.CTAs) >= 4:
		return models.LevelHigh
	case len(f.CTAs) >= 1:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

func landingPressure(f *models.PageFeatures) models.Level {
	if f.HasCheckoutOrForm && !f.HasPricing {
		return models.LevelHigh
	}
	if f.HasCheckoutOrForm {
		return models.LevelMedium
	}
	return models.LevelLow
}
