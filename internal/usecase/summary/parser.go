// Package summary splits AI-generated news summaries into their tagged sections.
// Summaries mark the introduction, body and conclusion with the literal
// markers [서론], [본론] and [결론]. Only the first occurrence of each marker counts.
package summary

import (
	"strings"

	"newspulse/internal/domain/entity"
)

// Section markers in the order they are expected to appear.
const (
	MarkerIntro      = "[서론]"
	MarkerBody       = "[본론]"
	MarkerConclusion = "[결론]"
)

const (
	sectionIntro = iota
	sectionBody
	sectionConclusion
	sectionCount
)

var markers = [sectionCount]string{MarkerIntro, MarkerBody, MarkerConclusion}

// offsets is the byte offset of the first occurrence of each marker, -1 when absent.
type offsets [sectionCount]int

// scan walks the text once and records the first offset of every marker.
// The scan stops as soon as all markers have been seen.
func scan(text string) offsets {
	o := offsets{-1, -1, -1}
	remaining := sectionCount
	for i := 0; i < len(text) && remaining > 0; i++ {
		if text[i] != '[' {
			continue
		}
		rest := text[i:]
		for s, m := range markers {
			if o[s] == -1 && strings.HasPrefix(rest, m) {
				o[s] = i
				remaining--
				break
			}
		}
	}
	return o
}

// section returns the trimmed text that follows marker s, ending at marker
// end when it lies after the section start, or at the end of the text.
func (o offsets) section(text string, s, end int) *string {
	if o[s] == -1 {
		return nil
	}
	start := o[s] + len(markers[s])
	stop := len(text)
	if end < sectionCount && o[end] >= start {
		stop = o[end]
	}
	out := strings.TrimSpace(text[start:stop])
	return &out
}

// Parse extracts the intro, body and conclusion sections from text.
//
// The intro runs to the body marker, the body runs to the conclusion marker,
// and the conclusion runs to the end of the text. A missing end marker
// extends the section to the end of the text. Parse never fails; text without
// any marker yields a ParsedSummary whose sections are all nil.
func Parse(text string) entity.ParsedSummary {
	o := scan(text)
	return entity.ParsedSummary{
		Intro:      o.section(text, sectionIntro, sectionBody),
		Body:       o.section(text, sectionBody, sectionConclusion),
		Conclusion: o.section(text, sectionConclusion, sectionCount),
		Raw:        text,
	}
}
