package portalapi

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"

	"newspulse/internal/domain/entity"
)

// DefaultVoiceFilename names uploads that arrive without a filename.
const DefaultVoiceFilename = "voice.webm"

type scheduleResultPayload struct {
	Intent      string     `json:"intent"`
	Scheduled   bool       `json:"scheduled"`
	ScheduledAt timeString `json:"scheduledAt"`
	Message     *string    `json:"message"`
}

type schedulePayload struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	ScheduledAt timeString `json:"scheduledAt"`
	Status      string     `json:"status"`
	CreatedAt   timeString `json:"createdAt"`
}

// AnalyzeVoice uploads recorded audio for delivery intent analysis.
func (c *Client) AnalyzeVoice(ctx context.Context, memberID int64, audio []byte, filename string) (entity.ScheduleResult, error) {
	if filename == "" {
		filename = DefaultVoiceFilename
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename))
	header.Set("Content-Type", audioContentType(filename))
	part, err := mw.CreatePart(header)
	if err != nil {
		return entity.ScheduleResult{}, fmt.Errorf("create audio part: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return entity.ScheduleResult{}, fmt.Errorf("write audio part: %w", err)
	}
	if err := mw.WriteField("userId", strconv.FormatInt(memberID, 10)); err != nil {
		return entity.ScheduleResult{}, fmt.Errorf("write userId field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return entity.ScheduleResult{}, fmt.Errorf("close multipart body: %w", err)
	}

	r := request{
		op:          "analyze_voice",
		method:      http.MethodPost,
		path:        "/api/brief-delivery/analyze-voice",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}
	return c.analyze(ctx, r)
}

// AnalyzeText submits free text for delivery intent analysis.
func (c *Client) AnalyzeText(ctx context.Context, memberID int64, rawText string) (entity.ScheduleResult, error) {
	r, err := jsonRequest("analyze_text", http.MethodPost, "/api/brief-delivery/analyze-text", map[string]any{
		"rawText": rawText,
		"userId":  memberID,
	})
	if err != nil {
		return entity.ScheduleResult{}, err
	}
	return c.analyze(ctx, r)
}

func (c *Client) analyze(ctx context.Context, r request) (entity.ScheduleResult, error) {
	var payload scheduleResultPayload
	if err := c.do(ctx, r, &payload); err != nil {
		return entity.ScheduleResult{}, err
	}
	// 登録済みの配信をエラー扱いしない
	return entity.ScheduleResult{
		Intent:      payload.Intent,
		Scheduled:   payload.Scheduled,
		ScheduledAt: c.optionalTime(ctx, r.op, "scheduledAt", string(payload.ScheduledAt)),
		Message:     payload.Message,
	}, nil
}

// ListSchedules returns the member's registered briefing deliveries.
func (c *Client) ListSchedules(ctx context.Context, memberID int64) ([]entity.Schedule, error) {
	var payload []schedulePayload
	r := request{
		op:     "list_schedules",
		method: http.MethodGet,
		path:   "/api/brief-delivery/schedules?userId=" + strconv.FormatInt(memberID, 10),
	}
	if err := c.do(ctx, r, &payload); err != nil {
		return nil, err
	}

	schedules := make([]entity.Schedule, 0, len(payload))
	for _, p := range payload {
		s := entity.Schedule{ID: p.ID, UserID: p.UserID, Status: entity.ScheduleStatus(p.Status)}
		if t := c.optionalTime(ctx, r.op, "scheduledAt", string(p.ScheduledAt)); t != nil {
			s.ScheduledAt = *t
		}
		if t := c.optionalTime(ctx, r.op, "createdAt", string(p.CreatedAt)); t != nil {
			s.CreatedAt = *t
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

var audioTypes = map[string]string{
	".webm": "audio/webm",
	".ogg":  "audio/ogg",
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
}

func audioContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := audioTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
