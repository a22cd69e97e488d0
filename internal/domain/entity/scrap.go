package entity

import "time"

// ScrapRecord is a news item bookmarked by a member.
// NewsID identifies the record; Sno is the backend surrogate key used for display.
// Empty strings stand in for missing optional text.
type ScrapRecord struct {
	Sno       int64
	NewsID    string
	Title     string
	Category  string
	ImageURL  string
	Summary   string
	URL       string
	ScrapedAt *time.Time
}

// DisplayKey returns the key a list view should use for the record.
func (s ScrapRecord) DisplayKey() string {
	if s.Sno != 0 {
		return itoa(s.Sno)
	}
	return s.NewsID
}

// Category is a selectable category choice with its display label.
type Category struct {
	Value string
	Label string
}

// EmptyReason explains why a filtered scrap list has no items.
type EmptyReason string

const (
	// EmptyReasonNone is used when the list is not empty.
	EmptyReasonNone EmptyReason = ""
	// EmptyReasonNoScraps means the member has not scrapped anything yet.
	EmptyReasonNoScraps EmptyReason = "no_scraps"
	// EmptyReasonNoMatch means scraps exist but none match the current filters.
	EmptyReasonNoMatch EmptyReason = "no_match"
)

// Message returns the user-facing text shown for the reason.
func (r EmptyReason) Message() string {
	switch r {
	case EmptyReasonNoScraps:
		return "아직 스크랩한 뉴스가 없습니다."
	case EmptyReasonNoMatch:
		return "조건에 맞는 스크랩이 없습니다."
	default:
		return ""
	}
}
