package entity

import "time"

// ScheduleResult is the outcome of a briefing delivery intent analysis.
type ScheduleResult struct {
	Intent      string
	Scheduled   bool
	ScheduledAt *time.Time
	Message     *string
}

// ScheduleStatus is the processing state of a briefing delivery schedule.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "PENDING"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusFailed    ScheduleStatus = "FAILED"
)

// Schedule is a registered briefing delivery for a member.
type Schedule struct {
	ID          int64
	UserID      int64
	ScheduledAt time.Time
	Status      ScheduleStatus
	CreatedAt   time.Time
}
