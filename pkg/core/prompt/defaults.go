package prompt

// IDs of the prompts this service uses.
const (
	IDReportHumanize     = "report.humanize"
	IDVisionPageElements = "vision.page_elements"
)

func defaultTemplates() []*Template {
	return []*Template{
		{
			ID:       IDReportHumanize,
			Name:     "Report Humanizer",
			Category: "report",
			Description: "Rewrites the structured decision findings as professional " +
				"diagnostic prose in the requested locale. Strictly bounded: it may " +
				"rephrase, never add findings.",
			SystemPrompt: "You are a conversion psychology consultant writing a client-ready " +
				"diagnostic report. Rewrite the structured findings you are given as clear, " +
				"professional prose. Rules: keep the seven sections and their headings in the " +
				"given order; do not invent findings, numbers, or guarantees; no marketing " +
				"superlatives; no absolute ROI promises; write in the requested language only.",
			UserPromptTmpl: "Language: {{.Locale}}\n\nStructured findings (JSON):\n{{.SectionsJSON}}\n\n" +
				"Rewrite these findings as the final report prose. Keep every section heading.",
			Version: "2.0",
		},
		{
			ID:       IDVisionPageElements,
			Name:     "Vision Page Elements",
			Category: "vision",
			Description: "Extracts detected page elements from a marketing screenshot " +
				"as structured JSON for the feature extractor.",
			SystemPrompt: "You analyze a screenshot of a marketing page. Return JSON only, " +
				"matching: {\"elements\":[{\"kind\":\"headline|paragraph|cta|price|form|badge|nav|footer\"," +
				"\"text\":\"...\",\"position\":\"top|middle|bottom\"}]}. Transcribe visible text " +
				"exactly. Do not describe the image or add commentary.",
			UserPromptTmpl: "List every visible text element of this page screenshot as JSON.",
			Version:        "2.0",
		},
	}
}
