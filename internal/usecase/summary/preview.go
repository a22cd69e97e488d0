package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// PreviewLength is the maximum number of characters kept in a card preview.
const PreviewLength = 110

const ellipsis = "…"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Preview condenses a summary into a single-line card preview.
//
// When the text has an intro marker only the intro is used, ending at the body
// marker, else the conclusion marker, else the end of the text. Whitespace
// runs collapse to one space and the result is cut to PreviewLength characters.
func Preview(text string) string {
	if text == "" {
		return ""
	}

	candidate := text
	o := scan(text)
	if o[sectionIntro] != -1 {
		start := o[sectionIntro] + len(MarkerIntro)
		stop := len(text)
		switch {
		case o[sectionBody] >= start:
			stop = o[sectionBody]
		case o[sectionConclusion] >= start:
			stop = o[sectionConclusion]
		}
		candidate = text[start:stop]
	}

	candidate = collapse(candidate)
	if candidate == "" {
		candidate = collapse(text)
	}
	return truncate(candidate, PreviewLength)
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// truncate cuts s to max runes and appends an ellipsis when anything was cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}
