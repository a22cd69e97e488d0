package repository

import (
	"context"

	"newspulse/internal/domain/entity"
)

// BriefingRepository submits delivery requests for intent analysis.
type BriefingRepository interface {
	AnalyzeVoice(ctx context.Context, memberID int64, audio []byte, filename string) (entity.ScheduleResult, error)
	AnalyzeText(ctx context.Context, memberID int64, rawText string) (entity.ScheduleResult, error)
	// ListSchedules returns the member's registered deliveries.
	ListSchedules(ctx context.Context, memberID int64) ([]entity.Schedule, error)
}
