package scrap

import (
	"slices"
	"strings"
	"time"

	"newspulse/internal/domain/entity"
)

// SortOrder orders scraps by their scrap time.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// ParseSortOrder reads a sort parameter. Empty means desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortDesc:
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	default:
		return "", ErrInvalidSort
	}
}

// Query is the member's current list filter.
type Query struct {
	Category string
	Search   string
	Sort     SortOrder
}

// CategoryRanker supplies display labels and ordering for category values.
type CategoryRanker interface {
	Label(value string) string
	Rank(value string) int
}

// Compute applies category filter, title search and sort to items.
// items is not modified; the result holds a subset of its elements.
func Compute(items []entity.ScrapRecord, q Query) []entity.ScrapRecord {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)

	out := make([]entity.ScrapRecord, 0, len(items))
	for _, it := range items {
		// Categories offers trimmed values, so match them trimmed.
		if category != "" && strings.TrimSpace(it.Category) != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Title), search) {
			continue
		}
		out = append(out, it)
	}

	asc := q.Sort == SortAsc
	slices.SortStableFunc(out, func(a, b entity.ScrapRecord) int {
		ta, tb := scrapedUnix(a), scrapedUnix(b)
		if asc {
			return compareInt64(ta, tb)
		}
		return compareInt64(tb, ta)
	})
	return out
}

// scrapedUnix treats a missing timestamp as the epoch.
func scrapedUnix(r entity.ScrapRecord) int64 {
	if r.ScrapedAt == nil {
		return time.Unix(0, 0).UnixNano()
	}
	return r.ScrapedAt.UnixNano()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Categories returns the distinct categories of items ordered by display
// priority. Categories the ranker does not know keep their first-seen order
// after the known ones.
func Categories(items []entity.ScrapRecord, ranker CategoryRanker) []entity.Category {
	seen := make(map[string]struct{})
	var values []string
	for _, it := range items {
		v := strings.TrimSpace(it.Category)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	slices.SortStableFunc(values, func(a, b string) int {
		return ranker.Rank(a) - ranker.Rank(b)
	})

	out := make([]entity.Category, len(values))
	for i, v := range values {
		out[i] = entity.Category{Value: v, Label: ranker.Label(v)}
	}
	return out
}

// EmptyReasonFor explains an empty filtered list.
func EmptyReasonFor(total, filtered int) entity.EmptyReason {
	switch {
	case total == 0:
		return entity.EmptyReasonNoScraps
	case filtered == 0:
		return entity.EmptyReasonNoMatch
	default:
		return entity.EmptyReasonNone
	}
}
