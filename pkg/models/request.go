package models

import (
	"fmt"
	"strings"
)

// Mode selects which payload field of an AnalysisRequest is populated.
type Mode string

const (
	ModeURL   Mode = "url"
	ModeText  Mode = "text"
	ModeImage Mode = "image"
)

// Goal is the conversion goal the caller wants the page to achieve.
type Goal string

const (
	GoalLeads     Goal = "leads"
	GoalSales     Goal = "sales"
	GoalBooking   Goal = "booking"
	GoalContact   Goal = "contact"
	GoalSubscribe Goal = "subscribe"
	GoalOther     Goal = "other"
)

// Locale governs the language of the generated report only.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFA Locale = "fa"
	LocaleTR Locale = "tr"
)

// AnalysisRequest is the input envelope for one decision scan.
// Exactly one of URL/Text/Image must be populated, consistent with Mode.
type AnalysisRequest struct {
	Mode    Mode   `json:"mode"`
	URL     string `json:"url,omitempty"`
	Text    string `json:"text,omitempty"`
	Image   []byte `json:"-"`
	Goal    Goal   `json:"goal"`
	Locale  Locale `json:"locale"`
	Refresh bool   `json:"refresh"`

	// Optional evidence payloads. When present they feed the ad and
	// pricing signal extractors; when absent the merger renormalizes.
	AdText      string `json:"ad_text,omitempty"`
	PricingHTML string `json:"pricing_html,omitempty"`
}

// Validate enforces the mode/payload invariant and fills defaulted fields.
func (r *AnalysisRequest) Validate() error {
	switch r.Mode {
	case ModeURL:
		if strings.TrimSpace(r.URL) == "" {
			return fmt.Errorf("validation_error: mode=url requires a non-empty url")
		}
		if len(r.Text) > 0 || len(r.Image) > 0 {
			return fmt.Errorf("validation_error: mode=url must not carry text or image payloads")
		}
	case ModeText:
		if strings.TrimSpace(r.Text) == "" {
			return fmt.Errorf("validation_error: mode=text requires a non-empty text block")
		}
		if r.URL != "" || len(r.Image) > 0 {
			return fmt.Errorf("validation_error: mode=text must not carry url or image payloads")
		}
	case ModeImage:
		if len(r.Image) == 0 {
			return fmt.Errorf("validation_error: mode=image requires image bytes")
		}
		if r.URL != "" || r.Text != "" {
			return fmt.Errorf("validation_error: mode=image must not carry url or text payloads")
		}
	default:
		return fmt.Errorf("validation_error: unknown mode %q", r.Mode)
	}

	if r.Goal == "" {
		r.Goal = GoalOther
	}
	switch r.Goal {
	case GoalLeads, GoalSales, GoalBooking, GoalContact, GoalSubscribe, GoalOther:
	default:
		return fmt.Errorf("validation_error: unknown goal %q", r.Goal)
	}

	if r.Locale == "" {
		r.Locale = LocaleEN
	}
	switch r.Locale {
	case LocaleEN, LocaleFA, LocaleTR:
	default:
		return fmt.Errorf("validation_error: unsupported locale %q", r.Locale)
	}
	return nil
}
