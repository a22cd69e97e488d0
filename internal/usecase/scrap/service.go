package scrap

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"newspulse/internal/common/sequence"
	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/repository"
)

// DefaultCacheTTL is used when the service is built with a zero TTL.
const DefaultCacheTTL = 30 * time.Second

// Service keeps a read-through copy of each member's scrap list.
//
// Every fetch and every successful unscrap takes a sequence number from the
// member's guard. A fetch whose number is older than the last applied change
// is discarded, so a slow list response cannot bring back a removed scrap.
type Service struct {
	repo repository.ScrapRepository
	ttl  time.Duration

	now     func() time.Time
	mu      sync.Mutex
	entries map[int64]*cacheEntry
	flight  singleflight.Group
}

type cacheEntry struct {
	items     []entity.ScrapRecord
	fetchedAt time.Time
	loaded    bool
	seq       sequence.Guard
}

// NewService creates a Service backed by repo.
func NewService(repo repository.ScrapRepository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		repo:    repo,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]*cacheEntry),
	}
}

// entry returns the member's cache entry, creating it on first use.
// Callers hold s.mu.
func (s *Service) entry(memberID int64) *cacheEntry {
	e, ok := s.entries[memberID]
	if !ok {
		e = &cacheEntry{}
		s.entries[memberID] = e
	}
	return e
}

// List returns the member's scraps. refresh bypasses the cache.
// Concurrent refreshes for one member share a single backend call.
func (s *Service) List(ctx context.Context, viewer entity.Viewer, refresh bool) ([]entity.ScrapRecord, error) {
	if err := viewer.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	e := s.entry(viewer.MemberID)
	if !refresh && e.loaded && s.now().Sub(e.fetchedAt) < s.ttl {
		items := slices.Clone(e.items)
		s.mu.Unlock()
		metrics.RecordScrapLookup("hit")
		return items, nil
	}
	s.mu.Unlock()
	metrics.RecordScrapLookup("miss")

	key := strconv.FormatInt(viewer.MemberID, 10)
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx), viewer.MemberID)
	})
	if err != nil {
		return nil, fmt.Errorf("list scraps: %w", err)
	}
	return slices.Clone(v.([]entity.ScrapRecord)), nil
}

// fetch loads the list and stores it unless a newer change was applied meanwhile.
func (s *Service) fetch(ctx context.Context, memberID int64) ([]entity.ScrapRecord, error) {
	s.mu.Lock()
	e := s.entry(memberID)
	seq := e.seq.Next()
	s.mu.Unlock()

	items, err := s.repo.ListScraps(ctx, memberID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !e.seq.Apply(seq) {
		logging.FromContext(ctx).Debug("discarding stale scrap list",
			slog.Int64("member_id", memberID),
			slog.Uint64("seq", seq),
			slog.Uint64("applied", e.seq.Applied()))
		metrics.RecordScrapLookup("stale")
		return slices.Clone(e.items), nil
	}
	e.items = items
	e.fetchedAt = s.now()
	e.loaded = true
	return slices.Clone(items), nil
}

// Unscrap removes newsID from the member's scraps.
// An item that is not in the member's list is ignored without a backend call.
// On failure the list is left as it was.
func (s *Service) Unscrap(ctx context.Context, viewer entity.Viewer, newsID string) error {
	if err := viewer.Validate(); err != nil {
		return err
	}
	if err := entity.ValidateNewsID(newsID); err != nil {
		return err
	}

	items, err := s.List(ctx, viewer, false)
	if err != nil {
		return err
	}
	if indexOf(items, newsID) < 0 {
		metrics.RecordUnscrap("absent")
		return nil
	}

	if err := s.repo.ToggleScrap(ctx, viewer.MemberID, newsID); err != nil {
		metrics.RecordUnscrap("failed")
		logging.FromContext(ctx).Warn("unscrap failed",
			slog.Int64("member_id", viewer.MemberID),
			slog.String("news_id", newsID),
			slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrUnscrapFailed, err)
	}

	s.mu.Lock()
	e := s.entry(viewer.MemberID)
	e.seq.Apply(e.seq.Next())
	if i := indexOf(e.items, newsID); i >= 0 {
		e.items = append(slices.Clone(e.items[:i]), e.items[i+1:]...)
	}
	s.mu.Unlock()

	metrics.RecordUnscrap("removed")
	return nil
}

// Invalidate drops the member's cached list.
func (s *Service) Invalidate(memberID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[memberID]; ok {
		e.loaded = false
	}
}

func indexOf(items []entity.ScrapRecord, newsID string) int {
	for i, it := range items {
		if it.NewsID == newsID {
			return i
		}
	}
	return -1
}
