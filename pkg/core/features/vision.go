package features

import (
	"context"
	"fmt"
	"strings"

	"decisionscan/pkg/core/llm"
	"decisionscan/pkg/core/prompt"
	"decisionscan/pkg/core/utils"
	"decisionscan/pkg/models"
)

// visionElement is one detected page element from the vision collaborator.
type visionElement struct {
	Kind     string `json:"kind"`     // headline, paragraph, cta, price, form, badge, nav, footer
	Text     string `json:"text"`
	Position string `json:"position"` // top, middle, bottom
}

type visionResult struct {
	Elements []visionElement `json:"elements"`
}

// FromImage asks the vision collaborator for detected page elements and
// folds them into the same PageFeatures shape the text path produces, using
// the same scoring formulas.
func FromImage(ctx context.Context, provider llm.VisionProvider, image []byte) (*models.PageFeatures, error) {
	reg := prompt.Get()
	system, err := reg.GetSystemPrompt(prompt.IDVisionPageElements)
	if err != nil {
		return nil, fmt.Errorf("vision prompt: %w", err)
	}

	raw, err := provider.GenerateVision(ctx, "Identify the page elements in this screenshot.", system, image, "image/png")
	if err != nil {
		return nil, fmt.Errorf("vision extraction: %w", err)
	}

	var result visionResult
	if _, err := utils.SmartParse(raw, &result); err != nil {
		return nil, fmt.Errorf("vision response unparseable: %w", err)
	}

	// Rebuild a synthetic text document from the detected elements so the
	// deterministic extractor computes the scores the same way.
	text := synthesizeText(result.Elements)
	f := FromText(text, "")

	// Element kinds carry signal the synthetic text may not: fold them in.
	for _, el := range result.Elements {
		switch el.Kind {
		case "price":
			f.HasPricing = true
		case "form":
			f.HasCheckoutOrForm = true
		case "cta":
			if !hasCTAText(f.CTAs, el.Text) {
				f.CTAs = append(f.CTAs, models.CTA{
					Text:     strings.ToLower(strings.TrimSpace(el.Text)),
					Location: locationFromPosition(el.Position),
				})
			}
		case "badge":
			f.TrustSignals = appendSignalOnce(f.TrustSignals, models.TrustSignal{
				Kind: models.TrustLogo, Phrase: strings.ToLower(el.Text),
			})
		}
	}

	// Recompute scores after the element-level merge.
	f.TrustScore = trustScore(f.TrustSignals)
	f.ClarityScore = clarityScore(f.Headlines, f.CTAs)
	f.FrictionScore = frictionScore(f.ClarityScore, f.HasCheckoutOrForm, f.HasPricing)
	return f, nil
}

func synthesizeText(elements []visionElement) string {
	var b strings.Builder
	for _, el := range elements {
		t := strings.TrimSpace(el.Text)
		if t == "" {
			continue
		}
		b.WriteString(t)
		b.WriteString("\n")
	}
	return b.String()
}

func hasCTAText(ctas []models.CTA, text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, c := range ctas {
		if c.Text == t {
			return true
		}
	}
	return false
}

func appendSignalOnce(signals []models.TrustSignal, s models.TrustSignal) []models.TrustSignal {
	for _, existing := range signals {
		if existing.Kind == s.Kind && existing.Phrase == s.Phrase {
			return signals
		}
	}
	return append(signals, s)
}

func locationFromPosition(pos string) string {
	switch pos {
	case "top":
		return "hero"
	case "bottom":
		return "footer"
	default:
		return "body"
	}
}
