package utils

import (
	"regexp"
	"strings"
)

// "1. ", "12) " style list numbering. Bare leading digits stay put so that
// titles like "1917" or "300 Spartans" survive parsing.
var listNumbering = regexp.MustCompile(`^\d+[.)]\s+`)

// ParseSuggestedTitles extracts candidate titles from the free-text answer of
// the generative service. The format is not contractually guaranteed, so the
// extraction is best effort: per line, leading bullet/dash/numbering noise is
// stripped, the text before the first colon is taken as the title, and lines
// that yield nothing are dropped. Output of this function is never
// authoritative; callers re-match it against the catalog.
func ParseSuggestedTitles(text string) []string {
	var titles []string
	for _, line := range strings.Split(text, "\n") {
		title := parseSuggestedLine(line)
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func parseSuggestedLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	// Bullet markers and list numbering: "- ", "* ", "• ", "1. ", "2) "
	line = strings.TrimLeft(line, "-–—•* \t")
	line = listNumbering.ReplaceAllString(line, "")

	if idx := strings.Index(line, ":"); idx >= 0 {
		line = line[:idx]
	}

	// Markdown emphasis and stray quotes around the title.
	line = strings.Trim(line, "*_ \t")
	line = strings.Trim(line, `"'“”`)

	return strings.TrimSpace(line)
}
