package report

import (
	"fmt"
	"strings"

	"decisionscan/pkg/models"
)

// sectionHeadings holds the seven fixed headings per locale. The fallback
// renders headings in the requested language; section bodies stay in the
// analysis language, which keeps the fallback deterministic.
var sectionHeadings = map[models.Locale][7]string{
	models.LocaleEN: {
		"Executive Decision Summary",
		"Context Snapshot",
		"Decision Failure Breakdown",
		"What to Fix First",
		"Actionable Recommendations",
		"What This Will Improve",
		"Next Diagnostic Step",
	},
	models.LocaleFA: {
		"خلاصه تصمیم‌گیری",
		"نمای زمینه",
		"تحلیل شکست تصمیم",
		"اولین اصلاح",
		"توصیه‌های عملی",
		"این تغییر چه چیزی را بهبود می‌دهد",
		"گام تشخیصی بعدی",
	},
	models.LocaleTR: {
		"Yönetici Karar Özeti",
		"Bağlam Görünümü",
		"Karar Başarısızlığı Analizi",
		"Önce Ne Düzeltilmeli",
		"Uygulanabilir Öneriler",
		"Bu Neyi İyileştirecek",
		"Sonraki Tanı Adımı",
	},
}

func localeName(l models.Locale) string {
	switch l {
	case models.LocaleFA:
		return "Persian (Farsi)"
	case models.LocaleTR:
		return "Turkish"
	default:
		return "English"
	}
}

// FallbackProse renders the machine twin as markdown without an LLM. The
// output always contains all seven sections in order.
func FallbackProse(s models.ReportSections, locale models.Locale) string {
	headings, ok := sectionHeadings[locale]
	if !ok {
		headings = sectionHeadings[models.LocaleEN]
	}

	var b strings.Builder
	section := func(i int, body string) {
		fmt.Fprintf(&b, "## %d. %s\n\n%s\n\n", i+1, headings[i], body)
	}

	section(0, s.ExecutiveSummary)
	section(1, s.ContextSnapshot)
	section(2, s.FailureBreakdown)
	section(3, s.WhatToFixFirst)

	var recs strings.Builder
	group := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&recs, "**%s**\n\n", title)
		for _, item := range items {
			fmt.Fprintf(&recs, "- %s\n", item)
		}
		recs.WriteString("\n")
	}
	group("Message level", s.MessageRecommendations)
	group("Structure level", s.StructureRecommendations)
	group("Timing and flow", s.TimingRecommendations)
	section(4, strings.TrimSpace(recs.String()))

	section(5, s.WhatThisWillImprove)
	section(6, s.NextDiagnosticStep)

	return strings.TrimSpace(b.String())
}
