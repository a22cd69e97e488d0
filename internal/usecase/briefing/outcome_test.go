package briefing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"newspulse/internal/domain/entity"
)

func seoul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestFormatTimestamp(t *testing.T) {
	loc := seoul(t)

	tests := []struct {
		name string
		at   time.Time
		lang language.Tag
		want string
	}{
		{name: "korean morning", at: time.Date(2025, 1, 5, 9, 0, 0, 0, loc), lang: language.Korean, want: "2025. 1. 5. 오전 9:00:00"},
		{name: "korean afternoon", at: time.Date(2025, 11, 25, 15, 4, 5, 0, loc), lang: language.MustParse("ko-KR"), want: "2025. 11. 25. 오후 3:04:05"},
		{name: "korean noon", at: time.Date(2025, 1, 5, 12, 0, 0, 0, loc), lang: language.Korean, want: "2025. 1. 5. 오후 12:00:00"},
		{name: "korean midnight", at: time.Date(2025, 1, 5, 0, 30, 0, 0, loc), lang: language.Korean, want: "2025. 1. 5. 오전 12:30:00"},
		{name: "english", at: time.Date(2025, 1, 5, 9, 0, 0, 0, loc), lang: language.AmericanEnglish, want: "1/5/2025, 9:00:00 AM"},
		{name: "english evening", at: time.Date(2025, 1, 5, 21, 7, 9, 0, loc), lang: language.English, want: "1/5/2025, 9:07:09 PM"},
		{name: "converted to zone", at: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), lang: language.Korean, want: "2025. 1. 5. 오전 9:00:00"},
		{name: "unsupported locale", at: time.Date(2025, 1, 5, 9, 0, 0, 0, loc), lang: language.Japanese, want: "2025. 1. 5. 오전 9:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.at, loc, tt.lang); got != tt.want {
				t.Errorf("FormatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	loc := seoul(t)
	at := time.Date(2025, 1, 5, 9, 0, 0, 0, loc)
	msg := "발송 시간을 이해하지 못했습니다."
	empty := ""

	tests := []struct {
		name   string
		result entity.ScheduleResult
		want   Outcome
	}{
		{
			name:   "scheduled",
			result: entity.ScheduleResult{Intent: "SCHEDULE", Scheduled: true, ScheduledAt: &at},
			want: Outcome{
				Kind:        OutcomeScheduled,
				Text:        "2025. 1. 5. 오전 9:00:00경 발송을 시작합니다. PDF 생성 후 메일함을 확인해 주세요",
				ScheduledAt: &at,
			},
		},
		{
			name:   "scheduled wins over message",
			result: entity.ScheduleResult{Scheduled: true, ScheduledAt: &at, Message: &msg},
			want: Outcome{
				Kind:        OutcomeScheduled,
				Text:        "2025. 1. 5. 오전 9:00:00경 발송을 시작합니다. PDF 생성 후 메일함을 확인해 주세요",
				ScheduledAt: &at,
			},
		},
		{
			name:   "scheduled without time falls through to message",
			result: entity.ScheduleResult{Scheduled: true, Message: &msg},
			want:   Outcome{Kind: OutcomeRejected, Text: msg},
		},
		{
			name:   "message only",
			result: entity.ScheduleResult{Message: &msg},
			want:   Outcome{Kind: OutcomeRejected, Text: msg},
		},
		{
			name:   "empty message acknowledges",
			result: entity.ScheduleResult{Message: &empty},
			want:   Outcome{Kind: OutcomeAcknowledged, Text: "처리되었습니다."},
		},
		{
			name:   "nothing",
			result: entity.ScheduleResult{},
			want:   Outcome{Kind: OutcomeAcknowledged, Text: "처리되었습니다."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.result, loc, language.Korean)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLocale(t *testing.T) {
	if got := ParseLocale("en-US"); got.String() != "en-US" {
		t.Errorf("ParseLocale(en-US) = %v", got)
	}
	if got := ParseLocale("not a locale!"); got.String() != "ko" {
		t.Errorf("ParseLocale(invalid) = %v, want ko", got)
	}
}
