package report

import (
	"fmt"
	"regexp"
	"strings"

	"decisionscan/pkg/core/utils"
	"decisionscan/pkg/models"
)

// Pre-emit language constraints on the prose. Violations reject the LLM
// output and fall back to the deterministic template.

var superlatives = []string{
	"amazing", "incredible", "unbelievable", "revolutionary",
	"game-changing", "mind-blowing", "world-class", "jaw-dropping",
}

var enterpriseBannedPhrases = []string{
	"lacks trust signals", "trust signals are missing",
	"missing trust signals", "untrustworthy", "cannot be trusted",
}

// roiPromiseRe catches absolute ROI language: guaranteed percentages and
// "will increase X by N" claims.
var roiPromiseRe = regexp.MustCompile(
	`(?i)(guarantee[ds]?\s+(a\s+|an\s+)?\d+\s*%|will\s+(increase|boost|grow)\s+(your\s+)?\w+\s+by\s+\d+|guaranteed\s+(roi|results|returns))`)

// CheckProse validates LLM prose against the tone constraints. A non-nil
// error means the caller must use the deterministic fallback instead.
func CheckProse(prose string, mode models.AnalysisMode) error {
	if !utils.ValidateMarkdown(prose) {
		return fmt.Errorf("llm_output_invalid: prose is not parseable markdown")
	}
	lower := strings.ToLower(prose)

	for _, w := range superlatives {
		if strings.Contains(lower, w) {
			return fmt.Errorf("llm_output_invalid: marketing superlative %q", w)
		}
	}
	if roiPromiseRe.MatchString(prose) {
		return fmt.Errorf("llm_output_invalid: absolute ROI promise detected")
	}
	if mode == models.ModeEnterpriseContextAware {
		for _, p := range enterpriseBannedPhrases {
			if strings.Contains(lower, p) {
				return fmt.Errorf("llm_output_invalid: generic trust verdict %q in enterprise mode", p)
			}
		}
	}
	return nil
}
