package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they pass
// through goldmark untouched and survive sanitizing; they become <mark> tags
// once the fragment is rendered.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

// highlightPattern matches ==text== on a single line.
var highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)

// markHighlights replaces ==text== with placeholder-wrapped text.
// Fenced and inline code are not excluded.
func markHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, markStart+"$1"+markEnd)
}

// expandMarks turns placeholders left in a rendered fragment into <mark> tags.
func expandMarks(fragment string) string {
	return strings.NewReplacer(markStart, "<mark>", markEnd, "</mark>").Replace(fragment)
}
