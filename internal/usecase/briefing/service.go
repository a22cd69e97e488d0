package briefing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"newspulse/internal/common/sequence"
	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/repository"
)

// Channel is how a delivery request was submitted.
type Channel string

const (
	ChannelVoice Channel = "voice"
	ChannelText  Channel = "text"
)

// Audio is a recorded voice request.
type Audio struct {
	Data     []byte
	Filename string
}

// Service submits delivery requests and lists schedules.
//
// Submissions of one member are numbered; when a response arrives after a
// newer submission was issued it is reported as ErrStaleResponse.
type Service struct {
	repo     repository.BriefingRepository
	location *time.Location
	lang     language.Tag

	mu     sync.Mutex
	guards map[int64]*sequence.Guard
}

// NewService creates a Service that formats scheduled times in loc and lang.
func NewService(repo repository.BriefingRepository, loc *time.Location, lang language.Tag) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:     repo,
		location: loc,
		lang:     lang,
		guards:   make(map[int64]*sequence.Guard),
	}
}

func (s *Service) guard(memberID int64) *sequence.Guard {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guards[memberID]
	if !ok {
		g = &sequence.Guard{}
		s.guards[memberID] = g
	}
	return g
}

// SubmitVoice sends recorded audio for analysis.
func (s *Service) SubmitVoice(ctx context.Context, viewer entity.Viewer, audio Audio) (Outcome, error) {
	if err := viewer.Validate(); err != nil {
		return Outcome{}, err
	}
	if len(audio.Data) == 0 {
		return Outcome{}, ErrEmptyAudio
	}
	return s.submit(ctx, viewer, ChannelVoice, func(ctx context.Context) (entity.ScheduleResult, error) {
		return s.repo.AnalyzeVoice(ctx, viewer.MemberID, audio.Data, audio.Filename)
	})
}

// SubmitText sends a free text request for analysis. The text is trimmed first.
func (s *Service) SubmitText(ctx context.Context, viewer entity.Viewer, rawText string) (Outcome, error) {
	if err := viewer.Validate(); err != nil {
		return Outcome{}, err
	}
	text := strings.TrimSpace(rawText)
	if text == "" {
		return Outcome{}, ErrEmptyText
	}
	if err := entity.ValidateRawText(text); err != nil {
		return Outcome{}, err
	}
	return s.submit(ctx, viewer, ChannelText, func(ctx context.Context) (entity.ScheduleResult, error) {
		return s.repo.AnalyzeText(ctx, viewer.MemberID, text)
	})
}

func (s *Service) submit(ctx context.Context, viewer entity.Viewer, ch Channel, call func(context.Context) (entity.ScheduleResult, error)) (Outcome, error) {
	logger := logging.WithViewer(logging.FromContext(ctx), viewer).With(slog.String("channel", string(ch)))

	g := s.guard(viewer.MemberID)
	seq := g.Next()

	result, err := call(ctx)
	if !g.IsLatest(seq) {
		logger.Info("dropping superseded briefing response", slog.Uint64("seq", seq))
		metrics.RecordBriefingSubmission(string(ch), "stale")
		return Outcome{}, ErrStaleResponse
	}
	g.Apply(seq)

	if err != nil {
		logger.Warn("briefing submission failed", slog.Any("error", err))
		metrics.RecordBriefingSubmission(string(ch), "error")
		return Outcome{}, fmt.Errorf("submit %s briefing: %w", ch, err)
	}

	out := Describe(result, s.location, s.lang)
	metrics.RecordBriefingSubmission(string(ch), string(out.Kind))
	logger.Info("briefing submitted",
		slog.String("intent", result.Intent),
		slog.String("outcome", string(out.Kind)))
	return out, nil
}

// Schedules lists the member's registered deliveries.
func (s *Service) Schedules(ctx context.Context, viewer entity.Viewer) ([]entity.Schedule, error) {
	if err := viewer.Validate(); err != nil {
		return nil, err
	}
	schedules, err := s.repo.ListSchedules(ctx, viewer.MemberID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// Location returns the zone scheduled times are shown in.
func (s *Service) Location() *time.Location {
	return s.location
}

// Lang returns the locale scheduled times are formatted for.
func (s *Service) Lang() language.Tag {
	return s.lang
}
