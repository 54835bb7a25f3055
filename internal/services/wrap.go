package services

import (
	"strings"
	"unicode/utf8"
)

const DefaultWrapWidth = 80

// WrapParagraph greedily packs whitespace-separated words into lines of at most width runes.
// Existing newlines count as ordinary whitespace. A word longer than width is never split and
// sits on a line of its own.
func WrapParagraph(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	lineLen := 0

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+1+wordLen > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wordLen
	}
	lines = append(lines, line.String())

	return strings.Join(lines, "\n")
}
