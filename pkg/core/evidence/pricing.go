package evidence

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"decisionscan/pkg/models"
)

var priceTokenRe = regexp.MustCompile(`[$€£₺¥][ ]?\d[\d,.]*|\d+[ ]?(?:/mo|/month|/yr|/year)\b`)

var commitmentTerms = []string{
	"annual contract", "annual commitment", "12-month", "12 month",
	"minimum term", "setup fee", "onboarding fee", "billed annually",
	"non-refundable", "auto-renew", "cancellation fee",
}

var planSelectors = []string{
	".plan", ".pricing-plan", ".tier", ".pricing-tier", ".price-card",
	"[class*=plan]", "[class*=tier]",
}

// Pricing derives DecisionSignals from pricing-page HTML or text. Plan
// count drives cognitive load, price and feature visibility drive
// reassurance, commitment terms drive pressure.
func Pricing(pricingHTML string) models.DecisionSignals {
	plans, visiblePrices, visibleFeatures, text := parsePricing(pricingHTML)
	lower := strings.ToLower(text)

	load := models.LevelLow
	switch {
	case plans > 4:
		load = models.LevelHigh
	case plans > 2:
		load = models.LevelMedium
	}

	transparency := 0
	if visiblePrices {
		transparency++
	}
	if visibleFeatures {
		transparency++
	}
	reassurance := models.LevelFromOrd(transparency)

	pressure := cueLevel(countMatches(lower, commitmentTerms))

	// Opaque pricing is itself a risk signal.
	risk := models.LevelLow
	if !visiblePrices {
		risk = models.LevelHigh
	} else if pressure == models.LevelHigh {
		risk = models.LevelMedium
	}

	return models.DecisionSignals{
		PromiseStrength:  reassurance,
		EmotionalTone:    models.LevelLow,
		ReassuranceLevel: reassurance,
		RiskExposure:     risk,
		CognitiveLoad:    load,
		PressureLevel:    pressure,
	}
}

// parsePricing reads structure out of HTML when it parses, else falls back
// to treating the input as plain text.
func parsePricing(input string) (plans int, visiblePrices, visibleFeatures bool, text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		text = input
		plans = len(planLabelMatches(input))
		visiblePrices = priceTokenRe.MatchString(input)
		return
	}

	text = doc.Text()

	for _, sel := range planSelectors {
		if n := doc.Find(sel).Length(); n > plans {
			plans = n
		}
	}
	if plans == 0 {
		plans = len(planLabelMatches(text))
	}

	visiblePrices = priceTokenRe.MatchString(text)
	visibleFeatures = doc.Find("ul li").Length() >= 3 ||
		strings.Count(strings.ToLower(text), "included") >= 2
	return
}

var planLabelRe = regexp.MustCompile(`(?i)\b(free|basic|starter|standard|plus|pro|premium|business|team|enterprise)\b`)

func planLabelMatches(text string) []string {
	seen := map[string]bool{}
	for _, m := range planLabelRe.FindAllString(text, -1) {
		seen[strings.ToLower(m)] = true
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	return labels
}
