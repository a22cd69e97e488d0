package portalapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"newspulse/internal/domain/entity"
)

type scrapItem struct {
	Sno       *int64     `json:"sno"`
	NewsID    flexString `json:"newsId"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	ImageURL  string     `json:"imageUrl"`
	URL       string     `json:"url"`
	Category  string     `json:"category"`
	ScrapedAt timeString `json:"scrapedAt"`
}

type mypageResponse struct {
	ScrapItems   []scrapItem  `json:"scrapItems"`
	ScrapNewsIDs []flexString `json:"scrapNewsIds"`
}

// ListScraps returns the member's scrapped news from the my-page endpoint.
func (c *Client) ListScraps(ctx context.Context, memberID int64) ([]entity.ScrapRecord, error) {
	var resp mypageResponse
	r := request{
		op:     "list_scraps",
		method: http.MethodGet,
		path:   "/api/ai/mypage/" + strconv.FormatInt(memberID, 10),
	}
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}

	records := make([]entity.ScrapRecord, 0, len(resp.ScrapItems))
	for _, item := range resp.ScrapItems {
		records = append(records, c.toScrapRecord(ctx, item))
	}
	return records, nil
}

// toScrapRecord never fails. An unreadable scrapedAt is dropped so the
// record sorts as the epoch instead of hiding the whole list.
func (c *Client) toScrapRecord(ctx context.Context, item scrapItem) entity.ScrapRecord {
	scrapedAt := c.optionalTime(ctx, "list_scraps", "scrapedAt", string(item.ScrapedAt))
	rec := entity.ScrapRecord{
		NewsID:    string(item.NewsID),
		Title:     item.Title,
		Category:  item.Category,
		ImageURL:  item.ImageURL,
		Summary:   item.Summary,
		URL:       item.URL,
		ScrapedAt: scrapedAt,
	}
	if item.Sno != nil {
		rec.Sno = *item.Sno
	}
	return rec
}

// ToggleScrap flips the scrap state of newsID for the member.
// The gateway only calls it for scrapped items, so it removes the scrap.
func (c *Client) ToggleScrap(ctx context.Context, memberID int64, newsID string) error {
	q := url.Values{}
	q.Set("memberId", strconv.FormatInt(memberID, 10))
	q.Set("newsId", newsID)
	r := request{
		op:     "toggle_scrap",
		method: http.MethodPost,
		path:   "/api/ai/mypage/scrap?" + q.Encode(),
	}
	return c.do(ctx, r, nil)
}
