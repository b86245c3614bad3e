package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"decisionscan/pkg/core/llm"
	"decisionscan/pkg/core/prompt"
	"decisionscan/pkg/core/utils"
	"decisionscan/pkg/models"
)

// Composer turns engine output into the final report: structured twin plus
// prose. The prose path goes through the LLM; the fallback path is fully
// deterministic.
type Composer struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewComposer wires the composer to its prose provider. provider may be
// nil, in which case every report uses the template fallback.
func NewComposer(provider llm.Provider, timeout time.Duration) *Composer {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Composer{provider: provider, timeout: timeout}
}

// Result is the composer output. ErrorTag is set when the LLM path was
// attempted and failed; the prose is then the deterministic fallback.
type Result struct {
	Sections models.ReportSections
	Prose    string
	ErrorTag string
}

// Compose builds the twin, validates it, then generates prose. It never
// returns an error: a failed LLM call degrades to the template fallback.
func (c *Composer) Compose(ctx context.Context, in Input) Result {
	sections := BuildSections(in)
	if err := ValidateSections(sections); err != nil {
		// The twin builder populates every section, so this only trips on
		// a programming error; fall back rather than emit a broken report.
		fmt.Printf("[REPORT] Twin validation failed: %v\n", err)
		return Result{Sections: sections, Prose: FallbackProse(sections, in.Locale), ErrorTag: "validation_error"}
	}

	if c.provider == nil {
		return Result{Sections: sections, Prose: FallbackProse(sections, in.Locale)}
	}

	prose, err := c.humanize(ctx, sections, in)
	if err != nil {
		fmt.Printf("[REPORT] Humanize failed, using deterministic fallback: %v\n", err)
		// The provider wraps the inner deadline error, so unwrap rather
		// than compare; the outer request context may also have expired.
		tag := "llm_transport_error"
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			tag = "llm_timeout"
		}
		return Result{Sections: sections, Prose: FallbackProse(sections, in.Locale), ErrorTag: tag}
	}
	return Result{Sections: sections, Prose: prose}
}

func (c *Composer) humanize(ctx context.Context, sections models.ReportSections, in Input) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tmpl, err := prompt.Get().GetPrompt(prompt.IDReportHumanize)
	if err != nil {
		return "", err
	}

	sectionsJSON, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sections: %w", err)
	}

	userPrompt, err := tmpl.RenderUser(map[string]interface{}{
		"Locale":       localeName(in.Locale),
		"SectionsJSON": string(sectionsJSON),
	})
	if err != nil {
		return "", err
	}

	raw, err := c.provider.GenerateResponse(ctx, userPrompt, tmpl.SystemPrompt, nil)
	if err != nil {
		return "", err
	}

	prose := utils.CleanMarkdown(raw)
	if err := CheckProse(prose, in.Brand.AnalysisMode); err != nil {
		return "", err
	}
	return prose, nil
}
