package briefing

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"newspulse/internal/domain/entity"
)

// OutcomeKind classifies what the member should see after a submission.
type OutcomeKind string

const (
	// OutcomeScheduled means a delivery was registered for ScheduledAt.
	OutcomeScheduled OutcomeKind = "scheduled"
	// OutcomeRejected means the backend explained why nothing was scheduled.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeAcknowledged means the request was accepted without a schedule.
	OutcomeAcknowledged OutcomeKind = "acknowledged"
)

const (
	deliveryNotice  = "경 발송을 시작합니다. PDF 생성 후 메일함을 확인해 주세요"
	acknowledgement = "처리되었습니다."
)

// Outcome is the user-facing interpretation of a ScheduleResult.
type Outcome struct {
	Kind        OutcomeKind
	Text        string
	ScheduledAt *time.Time
}

// IsError reports whether the outcome is shown as an error.
func (o Outcome) IsError() bool {
	return o.Kind == OutcomeRejected
}

// Describe interprets result. A scheduled result with a time wins over any
// message; otherwise a message is an error; otherwise a generic acknowledgement.
func Describe(result entity.ScheduleResult, loc *time.Location, lang language.Tag) Outcome {
	if result.Scheduled && result.ScheduledAt != nil {
		return Outcome{
			Kind:        OutcomeScheduled,
			Text:        FormatTimestamp(*result.ScheduledAt, loc, lang) + deliveryNotice,
			ScheduledAt: result.ScheduledAt,
		}
	}
	if result.Message != nil && *result.Message != "" {
		return Outcome{Kind: OutcomeRejected, Text: *result.Message}
	}
	return Outcome{Kind: OutcomeAcknowledged, Text: acknowledgement}
}

var localeMatcher = language.NewMatcher([]language.Tag{language.Korean, language.English})

// ParseLocale reads a BCP 47 tag such as "ko-KR". Invalid input yields Korean.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Korean
	}
	return tag
}

// FormatTimestamp renders t in loc the way the locale writes a date and time.
//
//	ko: 2025. 1. 5. 오전 9:00:00
//	en: 1/5/2025, 9:00:00 AM
//
// Locales other than English are written the Korean way.
func FormatTimestamp(t time.Time, loc *time.Location, lang language.Tag) string {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	pm := t.Hour() >= 12

	_, idx, _ := localeMatcher.Match(lang)
	if idx == 1 {
		marker := "AM"
		if pm {
			marker = "PM"
		}
		return fmt.Sprintf("%d/%d/%d, %d:%02d:%02d %s",
			int(t.Month()), t.Day(), t.Year(), hour, t.Minute(), t.Second(), marker)
	}

	marker := "오전"
	if pm {
		marker = "오후"
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), marker, hour, t.Minute(), t.Second())
}
