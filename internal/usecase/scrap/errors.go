// Package scrap provides the scrap list use cases: filtering, searching and
// sorting a member's bookmarks, deriving category choices, and unscrap with
// local removal.
package scrap

import "errors"

var (
	// ErrUnscrapFailed wraps a backend failure while removing a scrap.
	// The cached list is left unchanged.
	ErrUnscrapFailed = errors.New("스크랩 해제에 실패했습니다.")

	// ErrInvalidSort indicates an unsupported sort order in a query string.
	ErrInvalidSort = errors.New("sort must be asc or desc")
)
