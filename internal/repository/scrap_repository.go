// Package repository defines the ports through which use cases reach the
// portal backend. internal/infra/portalapi implements them.
package repository

import (
	"context"

	"newspulse/internal/domain/entity"
)

// ScrapRepository reads and mutates a member's scrap list.
type ScrapRepository interface {
	// ListScraps returns every scrap owned by the member, in backend order.
	ListScraps(ctx context.Context, memberID int64) ([]entity.ScrapRecord, error)
	// ToggleScrap flips the scrap state of one news item for the member.
	ToggleScrap(ctx context.Context, memberID int64, newsID string) error
}
