package evidence

import (
	"strings"

	"decisionscan/pkg/models"
)

var promiseCues = []string{
	"guaranteed", "proven", "results", "save", "faster", "double", "free",
	"best", "#1", "instantly", "in minutes", "without",
}

var urgencyCues = []string{
	"now", "today", "limited", "only", "hurry", "last chance", "ends",
	"don't miss", "while supplies", "act fast", "expires",
}

var reassuranceCues = []string{
	"no credit card", "cancel anytime", "money back", "money-back",
	"free trial", "no commitment", "no obligation", "risk-free", "risk free",
	"secure", "trusted",
}

// Ad derives DecisionSignals from ad or headline copy. The lexical scan
// covers promise strength, urgency, and reassurance; load and risk follow
// from copy length and reassurance absence.
func Ad(adText string) models.DecisionSignals {
	lower := strings.ToLower(adText)

	promise := cueLevel(countMatches(lower, promiseCues))
	urgency := cueLevel(countMatches(lower, urgencyCues))
	reassurance := cueLevel(countMatches(lower, reassuranceCues))

	words := len(strings.Fields(adText))
	load := models.LevelLow
	if words > 60 {
		load = models.LevelMedium
	}
	if words > 150 {
		load = models.LevelHigh
	}

	// Strong promises without reassurance widen perceived risk.
	risk := models.LevelMedium
	if promise == models.LevelHigh && reassurance == models.LevelLow {
		risk = models.LevelHigh
	} else if reassurance == models.LevelHigh {
		risk = models.LevelLow
	}

	return models.DecisionSignals{
		PromiseStrength:  promise,
		EmotionalTone:    urgency,
		ReassuranceLevel: reassurance,
		RiskExposure:     risk,
		CognitiveLoad:    load,
		PressureLevel:    urgency,
	}
}

func cueLevel(n int) models.Level {
	switch {
	case n >= 3:
		return models.LevelHigh
	case n >= 1:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

func countMatches(haystack string, cues []string) int {
	n := 0
	for _, c := range cues {
		if strings.Contains(haystack, c) {
			n++
		}
	}
	return n
}
