package scrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/domain/entity"
)

/*────────────────────  スタブ  ────────────────────*/

type stubRepo struct {
	mu        sync.Mutex
	lists     [][]entity.ScrapRecord // ListScraps が順に返す値
	listCalls int
	listHook  func(call int) // ListScraps の中で呼ばれる
	toggled   []string
	toggleErr error
	listErr   error
}

func (s *stubRepo) ListScraps(_ context.Context, _ int64) ([]entity.ScrapRecord, error) {
	s.mu.Lock()
	s.listCalls++
	call := s.listCalls
	hook := s.listHook
	var items []entity.ScrapRecord
	if len(s.lists) > 0 {
		idx := call - 1
		if idx >= len(s.lists) {
			idx = len(s.lists) - 1
		}
		items = s.lists[idx]
	}
	err := s.listErr
	s.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return items, err
}

func (s *stubRepo) ToggleScrap(_ context.Context, _ int64, newsID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toggleErr != nil {
		return s.toggleErr
	}
	s.toggled = append(s.toggled, newsID)
	return nil
}

func (s *stubRepo) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

var member = entity.Viewer{MemberID: 7, Subject: "7"}

func records(ids ...string) []entity.ScrapRecord {
	out := make([]entity.ScrapRecord, len(ids))
	for i, id := range ids {
		out[i] = entity.ScrapRecord{NewsID: id, Title: "news " + id}
	}
	return out
}

func newsIDs(items []entity.ScrapRecord) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.NewsID
	}
	return out
}

/*────────────────────  List  ────────────────────*/

func TestService_List_CachesWithinTTL(t *testing.T) {
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a"), records("a", "b")}}
	svc := NewService(repo, time.Minute)
	now := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, newsIDs(got))

	now = now.Add(30 * time.Second)
	got, err = svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, newsIDs(got))
	assert.Equal(t, 1, repo.calls())

	now = now.Add(31 * time.Second)
	got, err = svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, newsIDs(got))
	assert.Equal(t, 2, repo.calls())
}

func TestService_List_RefreshBypassesCache(t *testing.T) {
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a"), records("b")}}
	svc := NewService(repo, time.Hour)

	_, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	got, err := svc.List(context.Background(), member, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, newsIDs(got))
	assert.Equal(t, 2, repo.calls())
}

func TestService_List_ReturnsCopy(t *testing.T) {
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a", "b")}}
	svc := NewService(repo, time.Hour)

	got, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	got[0].NewsID = "mutated"

	again, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, newsIDs(again))
}

func TestService_List_Errors(t *testing.T) {
	t.Run("anonymous viewer", func(t *testing.T) {
		svc := NewService(&stubRepo{}, time.Minute)
		_, err := svc.List(context.Background(), entity.Viewer{}, false)
		assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	})

	t.Run("backend failure", func(t *testing.T) {
		backendErr := errors.New("boom")
		svc := NewService(&stubRepo{listErr: backendErr}, time.Minute)
		_, err := svc.List(context.Background(), member, false)
		assert.ErrorIs(t, err, backendErr)
	})
}

/*────────────────────  Unscrap  ────────────────────*/

func TestService_Unscrap_RemovesLocally(t *testing.T) {
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a", "b", "c")}}
	svc := NewService(repo, time.Hour)

	require.NoError(t, svc.Unscrap(context.Background(), member, "b"))

	assert.Equal(t, []string{"b"}, repo.toggled)
	got, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, newsIDs(got))
	assert.Equal(t, 1, repo.calls())
}

func TestService_Unscrap_AbsentIsNoOp(t *testing.T) {
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a")}}
	svc := NewService(repo, time.Hour)

	require.NoError(t, svc.Unscrap(context.Background(), member, "zzz"))
	assert.Empty(t, repo.toggled)
}

func TestService_Unscrap_FailureKeepsList(t *testing.T) {
	repo := &stubRepo{
		lists:     [][]entity.ScrapRecord{records("a", "b")},
		toggleErr: errors.New("HTTP 500"),
	}
	svc := NewService(repo, time.Hour)

	err := svc.Unscrap(context.Background(), member, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnscrapFailed)
	assert.Contains(t, err.Error(), "HTTP 500")

	got, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, newsIDs(got))
}

func TestService_Unscrap_ValidatesInput(t *testing.T) {
	svc := NewService(&stubRepo{}, time.Hour)

	assert.ErrorIs(t, svc.Unscrap(context.Background(), entity.Viewer{}, "a"), entity.ErrUnauthenticated)

	var verr *entity.ValidationError
	assert.ErrorAs(t, svc.Unscrap(context.Background(), member, ""), &verr)
}

// A list response requested before an unscrap finished must not bring the
// removed item back.
func TestService_StaleListDiscardedAfterUnscrap(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a", "b"), records("a", "b")}}
	repo.listHook = func(call int) {
		if call == 2 {
			close(started)
			<-release
		}
	}
	svc := NewService(repo, time.Hour)

	_, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)

	type result struct {
		items []entity.ScrapRecord
		err   error
	}
	done := make(chan result, 1)
	go func() {
		items, err := svc.List(context.Background(), member, true)
		done <- result{items, err}
	}()
	<-started

	require.NoError(t, svc.Unscrap(context.Background(), member, "a"))
	close(release)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, []string{"b"}, newsIDs(res.items))

	got, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, newsIDs(got))
}

func TestService_Invalidate(t *testing.T) {
	repo := &stubRepo{lists: [][]entity.ScrapRecord{records("a"), records("a", "b")}}
	svc := NewService(repo, time.Hour)

	_, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	svc.Invalidate(member.MemberID)

	got, err := svc.List(context.Background(), member, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, newsIDs(got))
}
