// Package normalize provides the text cleaners used before skill matching and segmentation.
package normalize

import (
	"regexp"
	"strings"
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	disallowed     = regexp.MustCompile(`[^\w .,;!?-]`)
	nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)
)

// Clean normalizes extracted document text.
//
// Whitespace runs become a single space, control bytes are stripped and every character
// outside word characters and the punctuation subset ". , ; ! ? -" is removed. Word
// characters are ASCII only, so non-ASCII letters are dropped too. Case is preserved.
// Clean is idempotent.
func Clean(text string) string {
	text = collapseSpaces(text)
	text = controlChars.ReplaceAllString(text, "")
	text = disallowed.ReplaceAllString(text, "")
	return collapseSpaces(text)
}

// ForMatching lowercases text, turns punctuation into spaces and collapses whitespace.
// It is the cleaner applied to resume text before skill detection.
func ForMatching(text string) string {
	text = strings.ToLower(text)
	text = nonWordOrSpace.ReplaceAllString(text, " ")
	return collapseSpaces(text)
}

// Lines splits text into trimmed, lowercased, non-empty lines.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, strings.ToLower(line))
	}
	return lines
}

// collapseSpaces replaces every whitespace run (including Unicode spaces) with one space and trims.
func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
