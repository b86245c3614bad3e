package evidence

import (
	"math"

	"decisionscan/pkg/models"
)

// Source weights before normalization over present sources.
const (
	weightLanding = 0.6
	weightAd      = 0.2
	weightPricing = 0.2
)

// Merged is the merger output: combined signals plus a confidence that
// reflects cross-source agreement.
type Merged struct {
	Signals    models.DecisionSignals
	Confidence float64 // [0.4, 0.95]
	Sources    []string
}

type weightedSignals struct {
	name    string
	weight  float64
	signals models.DecisionSignals
}

// Merge combines the landing record with optional ad and pricing records.
// Each ordinal field is the weighted mean on the 0..2 scale rounded to
// nearest. Confidence starts at 0.7, moves 0.05 per agreeing or
// disagreeing source pair per field aggregate, clamped to [0.4, 0.95].
// When ad evidence is present, the expectation gap is derived from how far
// the ad's promise overshoots the landing page's.
func Merge(landing models.DecisionSignals, ad, pricing *models.DecisionSignals) Merged {
	sources := []weightedSignals{{name: "landing", weight: weightLanding, signals: landing}}
	if ad != nil {
		sources = append(sources, weightedSignals{name: "ad", weight: weightAd, signals: *ad})
	}
	if pricing != nil {
		sources = append(sources, weightedSignals{name: "pricing", weight: weightPricing, signals: *pricing})
	}

	total := 0.0
	for _, s := range sources {
		total += s.weight
	}

	out := Merged{Confidence: 0.7}
	for _, s := range sources {
		out.Sources = append(out.Sources, s.name)
	}

	fields := []struct {
		get func(models.DecisionSignals) models.Level
		set func(*models.DecisionSignals, models.Level)
	}{
		{func(d models.DecisionSignals) models.Level { return d.PromiseStrength },
			func(d *models.DecisionSignals, l models.Level) { d.PromiseStrength = l }},
		{func(d models.DecisionSignals) models.Level { return d.EmotionalTone },
			func(d *models.DecisionSignals, l models.Level) { d.EmotionalTone = l }},
		{func(d models.DecisionSignals) models.Level { return d.ReassuranceLevel },
			func(d *models.DecisionSignals, l models.Level) { d.ReassuranceLevel = l }},
		{func(d models.DecisionSignals) models.Level { return d.RiskExposure },
			func(d *models.DecisionSignals, l models.Level) { d.RiskExposure = l }},
		{func(d models.DecisionSignals) models.Level { return d.CognitiveLoad },
			func(d *models.DecisionSignals, l models.Level) { d.CognitiveLoad = l }},
		{func(d models.DecisionSignals) models.Level { return d.PressureLevel },
			func(d *models.DecisionSignals, l models.Level) { d.PressureLevel = l }},
	}

	agree, disagree := 0, 0
	for _, field := range fields {
		sum := 0.0
		for _, s := range sources {
			sum += s.weight / total * float64(field.get(s.signals).Ord())
		}
		field.set(&out.Signals, models.LevelFromOrd(int(math.Round(sum))))

		// Pairwise agreement across sources for this field.
		for i := 0; i < len(sources); i++ {
			for j := i + 1; j < len(sources); j++ {
				if field.get(sources[i].signals) == field.get(sources[j].signals) {
					agree++
				} else {
					disagree++
				}
			}
		}
	}

	// An ad that promises more than the landing page delivers opens an
	// expectation gap: the visitor arrives primed for an outcome the page
	// does not restate.
	if ad != nil {
		if d := ad.PromiseStrength.Ord() - landing.PromiseStrength.Ord(); d > 0 {
			out.Signals.ExpectationGap = models.LevelFromOrd(d)
		} else {
			out.Signals.ExpectationGap = models.LevelLow
		}
	}

	out.Confidence += 0.05 * float64(agree)
	out.Confidence -= 0.05 * float64(disagree)
	out.Confidence = clampFloat(out.Confidence, 0.4, 0.95)
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
