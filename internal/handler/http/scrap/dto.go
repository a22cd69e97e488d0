// Package scrap provides the HTTP handlers for a member's scrap list.
package scrap

import (
	"time"

	"newspulse/internal/domain/entity"
	scrapUC "newspulse/internal/usecase/scrap"
	"newspulse/internal/usecase/summary"
)

// ItemDTO is one scrap as shown on a list card.
type ItemDTO struct {
	Key           string     `json:"key"`
	Sno           int64      `json:"sno,omitempty"`
	NewsID        string     `json:"news_id"`
	Title         string     `json:"title"`
	Category      string     `json:"category,omitempty"`
	CategoryLabel string     `json:"category_label,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	URL           string     `json:"url,omitempty"`
	Preview       string     `json:"preview"`
	ScrapedAt     *time.Time `json:"scraped_at"`
}

// CategoryDTO is a selectable category filter.
type CategoryDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListResponse is the body of GET /scraps.
type ListResponse struct {
	Items        []ItemDTO     `json:"items"`
	Categories   []CategoryDTO `json:"categories"`
	EmptyReason  string        `json:"empty_reason"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Count        int           `json:"count"`
	Total        int           `json:"total"`
}

// ToItems converts records for display. Categories are labelled by ranker.
func ToItems(records []entity.ScrapRecord, ranker scrapUC.CategoryRanker) []ItemDTO {
	out := make([]ItemDTO, 0, len(records))
	for _, r := range records {
		item := ItemDTO{
			Key:       r.DisplayKey(),
			Sno:       r.Sno,
			NewsID:    r.NewsID,
			Title:     r.Title,
			Category:  r.Category,
			ImageURL:  r.ImageURL,
			URL:       r.URL,
			Preview:   summary.Preview(r.Summary),
			ScrapedAt: r.ScrapedAt,
		}
		if r.Category != "" && ranker != nil {
			item.CategoryLabel = ranker.Label(r.Category)
		}
		out = append(out, item)
	}
	return out
}

// BuildList applies q to all and assembles the list response.
func BuildList(all []entity.ScrapRecord, q scrapUC.Query, ranker scrapUC.CategoryRanker) ListResponse {
	filtered := scrapUC.Compute(all, q)
	reason := scrapUC.EmptyReasonFor(len(all), len(filtered))

	cats := scrapUC.Categories(all, ranker)
	catDTOs := make([]CategoryDTO, 0, len(cats))
	for _, c := range cats {
		catDTOs = append(catDTOs, CategoryDTO{Value: c.Value, Label: c.Label})
	}

	return ListResponse{
		Items:        ToItems(filtered, ranker),
		Categories:   catDTOs,
		EmptyReason:  string(reason),
		EmptyMessage: reason.Message(),
		Count:        len(filtered),
		Total:        len(all),
	}
}
