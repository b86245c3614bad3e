package features

import (
	"strings"
	"unicode"

	"decisionscan/pkg/models"
)

// tokenizeBlocks splits text into classified blocks. Splitting is on
// newlines; classification uses positional and lexical heuristics. The
// result is deterministic for identical input.
func tokenizeBlocks(text string) []models.TextBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]models.TextBlock, 0, len(lines))
	pos := 0
	total := len(lines)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, models.TextBlock{
			Kind:     classifyBlock(line, i, total),
			Text:     line,
			Position: pos,
		})
		pos++
	}
	return blocks
}

func classifyBlock(line string, index, total int) models.BlockKind {
	lower := strings.ToLower(line)
	words := strings.Fields(line)

	if isCTAPhrase(lower) {
		return models.BlockCTACandidate
	}
	if index >= total-2 && looksLikeFooter(lower) {
		return models.BlockFooter
	}
	if index < 3 && looksLikeNav(words) {
		return models.BlockNav
	}
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*") {
		return models.BlockList
	}
	if isHeadline(line, words, index, total) {
		return models.BlockHeadline
	}
	return models.BlockParagraph
}

// isHeadline: short, title-case or no terminal punctuation, appears early.
func isHeadline(line string, words []string, index, total int) bool {
	if len(words) == 0 || len(words) > 12 {
		return false
	}
	runes := []rune(line)
	endsClean := !strings.ContainsRune(".!?,;:", runes[len(runes)-1])
	early := total == 0 || index < total/2
	return endsClean && (early || isTitleCase(words))
}

func isTitleCase(words []string) bool {
	upper := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			upper++
		}
	}
	return upper >= (len(words)+1)/2
}

func looksLikeNav(words []string) bool {
	// Nav rows read as short pipe- or space-separated link labels.
	if len(words) < 3 || len(words) > 10 {
		return false
	}
	short := 0
	for _, w := range words {
		if len(w) <= 12 {
			short++
		}
	}
	return short == len(words)
}

func looksLikeFooter(lower string) bool {
	for _, cue := range []string{"©", "copyright", "all rights reserved", "privacy policy", "terms"} {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// isCTAPhrase reports whether the whole line is a CTA from the dictionary,
// allowing a short trailing arrow or symbol.
func isCTAPhrase(lower string) bool {
	trimmed := strings.TrimRight(lower, " >→»!")
	for _, phrase := range ctaPhrases {
		if trimmed == phrase {
			return true
		}
	}
	return false
}

// containsAny reports whether any cue appears in the haystack.
func containsAny(haystack string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(haystack, c) {
			return true
		}
	}
	return false
}

// countMatches returns how many cues appear in the haystack.
func countMatches(haystack string, cues []string) int {
	n := 0
	for _, c := range cues {
		if strings.Contains(haystack, c) {
			n++
		}
	}
	return n
}
