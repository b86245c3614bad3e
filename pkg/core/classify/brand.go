// Package classify infers brand context and decision stage from page
// features. Both classifiers are purely lexical and structural; no user
// data or tracking is involved.
package classify

import (
	"net/url"
	"strings"

	"decisionscan/pkg/models"
)

var enterpriseMarkers = []string{
	"careers", "investors", "investor relations", "press", "newsroom",
	"leadership", "annual report", "sustainability",
	"soc 2", "iso 27001", "gdpr", "hipaa", "fortune 500",
	"contact sales", "talk to sales", "sla", "enterprise",
	"partners", "resellers",
}

var knownBrandTokens = []string{
	"stripe", "shopify", "salesforce", "hubspot", "atlassian", "slack",
	"microsoft", "google", "amazon", "adobe", "oracle", "sap", "zoom",
	"intercom", "zendesk", "mailchimp", "notion", "figma", "twilio",
}

var languageSwitcherCues = []string{
	"español", "deutsch", "français", "日本語", "português", "italiano",
	"select language", "change language",
}

// BrandContext infers maturity from enterprise markers in the text and the
// page host. Enterprise and established brands switch the decision engine
// into its context-aware vocabulary.
func BrandContext(text string, pageURL string) models.BrandContext {
	lower := strings.ToLower(text)
	host := hostOf(pageURL)

	score := 0
	if matchesKnownBrand(host, lower) {
		score += 4
	}
	score += min(countMatches(lower, enterpriseMarkers), 5)
	if containsAny(lower, languageSwitcherCues) {
		score++
	}

	var maturity models.BrandMaturity
	var confidence float64
	switch {
	case score >= 6:
		maturity = models.MaturityEnterprise
		confidence = 0.9
	case score >= 4:
		maturity = models.MaturityEstablished
		confidence = 0.75
	case score >= 2:
		maturity = models.MaturityGrowing
		confidence = 0.6
	default:
		maturity = models.MaturityNew
		confidence = 0.55
	}

	mode := models.ModeGeneric
	if maturity == models.MaturityEnterprise || maturity == models.MaturityEstablished {
		mode = models.ModeEnterpriseContextAware
	}
	return models.BrandContext{
		BrandMaturity: maturity,
		Confidence:    confidence,
		AnalysisMode:  mode,
	}
}

func matchesKnownBrand(host, lower string) bool {
	for _, token := range knownBrandTokens {
		if host != "" && strings.Contains(host, token) {
			return true
		}
		// Body references count only as a self-identification, not a
		// logo-wall mention.
		if strings.Contains(lower, "© "+token) || strings.Contains(lower, "copyright "+token) {
			return true
		}
	}
	return false
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

func containsAny(haystack string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(haystack, c) {
			return true
		}
	}
	return false
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

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
