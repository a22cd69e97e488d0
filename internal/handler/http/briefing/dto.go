// Package briefing provides the HTTP handlers for briefing delivery requests.
package briefing

import (
	"time"

	"newspulse/internal/domain/entity"
	briefUC "newspulse/internal/usecase/briefing"
)

// OutcomeDTO is the result of a submission as shown to the member.
type OutcomeDTO struct {
	Kind        string     `json:"kind"`
	Text        string     `json:"text"`
	IsError     bool       `json:"is_error"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// ScheduleDTO is a registered delivery.
type ScheduleDTO struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toOutcomeDTO(o briefUC.Outcome, loc *time.Location) OutcomeDTO {
	dto := OutcomeDTO{Kind: string(o.Kind), Text: o.Text, IsError: o.IsError()}
	if o.ScheduledAt != nil {
		t := o.ScheduledAt.In(loc)
		dto.ScheduledAt = &t
	}
	return dto
}

// ToSchedules converts schedules with times shown in loc.
func ToSchedules(schedules []entity.Schedule, loc *time.Location) []ScheduleDTO {
	out := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, ScheduleDTO{
			ID:          s.ID,
			UserID:      s.UserID,
			ScheduledAt: s.ScheduledAt.In(loc),
			Status:      string(s.Status),
			CreatedAt:   s.CreatedAt.In(loc),
		})
	}
	return out
}
