// Package features derives structured PageFeatures from page text, a URL,
// or vision output. The text path is fully deterministic: identical input
// text always yields identical features. No LLM runs here.
package features

import (
	"net/url"
	"sort"
	"strings"

	"decisionscan/pkg/models"
)

// FromText computes PageFeatures from page text plus the (possibly empty)
// source URL.
func FromText(text string, pageURL string) *models.PageFeatures {
	blocks := tokenizeBlocks(text)
	lower := strings.ToLower(text)

	f := &models.PageFeatures{
		Blocks:       blocks,
		Headlines:    []string{},
		CTAs:         []models.CTA{},
		TrustSignals: []models.TrustSignal{},
		WordCount:    len(strings.Fields(text)),
	}

	for _, b := range blocks {
		if b.Kind == models.BlockHeadline {
			f.Headlines = append(f.Headlines, b.Text)
		}
	}
	f.CTAs = detectCTAs(blocks, lower)
	f.TrustSignals = detectTrustSignals(lower)

	f.HasPricing = currencyRe.MatchString(text) ||
		priceWordRe.MatchString(text) ||
		planLabelRe.MatchString(text)
	f.HasCheckoutOrForm = containsAny(lower, formLabels)
	f.HasEducationalCopy = hasEducationalCopy(lower, blocks)
	f.HasComparisonTable = containsAny(lower, comparisonCues)
	f.HasOnboardingCues = containsAny(lower, onboardingCues)

	f.TrustScore = trustScore(f.TrustSignals)
	f.ClarityScore = clarityScore(f.Headlines, f.CTAs)
	f.FrictionScore = frictionScore(f.ClarityScore, f.HasCheckoutOrForm, f.HasPricing)

	f.PageType, f.PageTypeConfidence = classifyPageType(f, lower, pageURL)
	f.PageIntent = classifyIntent(f, lower)
	return f
}

func detectCTAs(blocks []models.TextBlock, lower string) []models.CTA {
	ctas := []models.CTA{}
	seen := map[string]bool{}
	total := len(blocks)
	for _, b := range blocks {
		bl := strings.ToLower(b.Text)
		for _, phrase := range ctaPhrases {
			if !strings.Contains(bl, phrase) {
				continue
			}
			if seen[phrase] {
				continue
			}
			seen[phrase] = true
			ctas = append(ctas, models.CTA{Text: phrase, Location: ctaLocation(b.Position, total)})
		}
	}
	sort.Slice(ctas, func(i, j int) bool { return ctas[i].Text < ctas[j].Text })
	return ctas
}

func ctaLocation(pos, total int) string {
	if total == 0 {
		return "body"
	}
	switch {
	case pos < total/4+1:
		return "hero"
	case pos >= total*3/4:
		return "footer"
	default:
		return "body"
	}
}

func detectTrustSignals(lower string) []models.TrustSignal {
	signals := []models.TrustSignal{}
	// Iterate kinds in a fixed order so output is byte-stable.
	for _, kind := range []models.TrustSignalKind{models.TrustGuarantee, models.TrustSecurity, models.TrustTestimonial, models.TrustLogo} {
		for _, phrase := range trustPatterns[string(kind)] {
			if strings.Contains(lower, phrase) {
				signals = append(signals, models.TrustSignal{Kind: kind, Phrase: phrase})
				break
			}
		}
	}
	return signals
}

func hasEducationalCopy(lower string, blocks []models.TextBlock) bool {
	if countMatches(lower, educationalCues) >= 2 {
		return true
	}
	// Heavy explanatory paragraph density also counts.
	paras, long := 0, 0
	for _, b := range blocks {
		if b.Kind == models.BlockParagraph {
			paras++
			if len(strings.Fields(b.Text)) >= 30 {
				long++
			}
		}
	}
	return paras >= 4 && long*2 >= paras && containsAny(lower, educationalCues)
}

// trustScore starts at 50 and moves by a fixed weight per signal kind.
func trustScore(signals []models.TrustSignal) int {
	score := 50
	weights := map[models.TrustSignalKind]int{
		models.TrustGuarantee:   12,
		models.TrustSecurity:    10,
		models.TrustTestimonial: 15,
		models.TrustLogo:        13,
	}
	for _, s := range signals {
		score += weights[s.Kind]
	}
	if len(signals) == 0 {
		score -= 15
	}
	return clamp(score, 0, 100)
}

// clarityScore weighs headline count, CTA-to-headline ratio, and mean
// headline length. Missing or overlong headlines pull it down.
func clarityScore(headlines []string, ctas []models.CTA) int {
	score := 50

	switch n := len(headlines); {
	case n == 0:
		score -= 25
	case n <= 5:
		score += 20
	case n <= 10:
		score += 5
	default:
		score -= 10
	}

	if len(headlines) > 0 {
		totalWords := 0
		for _, h := range headlines {
			totalWords += len(strings.Fields(h))
		}
		mean := totalWords / len(headlines)
		switch {
		case mean >= 3 && mean <= 8:
			score += 15
		case mean > 10:
			score -= 10
		}

		ratio := float64(len(ctas)) / float64(len(headlines))
		switch {
		case ratio >= 0.2 && ratio <= 1.5:
			score += 15
		case ratio > 3:
			score -= 10
		}
	}
	if len(ctas) == 0 {
		score -= 15
	}
	return clamp(score, 0, 100)
}

// frictionScore inverts clarity and rises when a form or checkout asks for
// commitment without pricing transparency.
func frictionScore(clarity int, hasForm, hasPricing bool) int {
	score := 100 - clarity
	if hasForm && !hasPricing {
		score += 15
	}
	return clamp(score, 0, 100)
}

// classifyPageType runs the decision tree over presence flags. Ties break
// in the fixed order ecommerce_product, saas_pricing, local_service,
// content_informational, landing_generic, other. Confidence is the
// fraction of discriminating signals satisfied.
func classifyPageType(f *models.PageFeatures, lower, pageURL string) (models.PageType, float64) {
	host := hostOf(pageURL)

	type candidate struct {
		t         models.PageType
		satisfied int
		total     int
	}
	candidates := []candidate{
		{
			t:         models.PageEcommerceProduct,
			satisfied: boolCount(containsAny(lower, ecommerceCues), f.HasPricing, f.HasCheckoutOrForm),
			total:     3,
		},
		{
			t:         models.PageSaaSPricing,
			satisfied: boolCount(containsAny(lower, saasCues), f.HasPricing, f.HasComparisonTable),
			total:     3,
		},
		{
			t:         models.PageLocalService,
			satisfied: boolCount(containsAny(lower, localServiceCues), countMatches(lower, localServiceCues) >= 2),
			total:     2,
		},
		{
			t:         models.PageContentInformational,
			satisfied: boolCount(f.HasEducationalCopy, len(f.CTAs) == 0 || f.WordCount > 800),
			total:     2,
		},
		{
			t:         models.PageLandingGeneric,
			satisfied: boolCount(len(f.Headlines) > 0, len(f.CTAs) > 0),
			total:     2,
		},
	}

	best := candidate{t: models.PageOther, total: 1}
	bestScore := -1.0
	for _, c := range candidates {
		if c.satisfied == 0 {
			continue
		}
		score := float64(c.satisfied) / float64(c.total)
		// Strict greater-than keeps the declared tie order.
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < 0 {
		if host != "" || f.WordCount > 0 {
			return models.PageOther, 0.2
		}
		return models.PageOther, 0.0
	}
	return best.t, bestScore
}

func classifyIntent(f *models.PageFeatures, lower string) models.PageIntent {
	switch {
	case containsAny(lower, ecommerceCues) && f.HasCheckoutOrForm:
		return models.IntentPurchase
	case f.HasComparisonTable && f.HasPricing:
		return models.IntentPricingComparison
	case containsAny(lower, []string{"sign up", "signup", "create account", "start free trial", "register"}):
		return models.IntentSignup
	case f.HasCheckoutOrForm || containsAny(lower, []string{"get a quote", "contact us", "request a demo", "get a demo", "book a demo"}):
		return models.IntentLeadCapture
	case f.HasEducationalCopy:
		return models.IntentInform
	default:
		return models.IntentOther
	}
}

func hostOf(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
