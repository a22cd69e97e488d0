package entity

// ParsedSummary holds the sections extracted from a tagged summary text.
// A section pointer is non-nil iff its marker occurred in the input.
// When no marker occurred all three are nil and Raw carries the input.
type ParsedSummary struct {
	Intro      *string
	Body       *string
	Conclusion *string
	Raw        string
}

// HasSections reports whether at least one section marker was found.
func (p ParsedSummary) HasSections() bool {
	return p.Intro != nil || p.Body != nil || p.Conclusion != nil
}
