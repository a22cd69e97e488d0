package scrap

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/auth"
	"newspulse/internal/handler/http/httperr"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/logging"
	scrapUC "newspulse/internal/usecase/scrap"
)

// ListHandler serves GET /scraps?category=&q=&sort=&refresh=.
type ListHandler struct {
	Svc     *scrapUC.Service
	Catalog scrapUC.CategoryRanker
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.ViewerFromRequest(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	q, refresh, err := parseQuery(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	items, err := h.Svc.List(r.Context(), viewer, refresh)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	resp := BuildList(items, q, h.Catalog)
	logging.FromContext(r.Context()).Debug("scrap list served",
		slog.Int("total", resp.Total),
		slog.Int("count", resp.Count),
		slog.String("category", q.Category),
		slog.String("sort", string(q.Sort)))
	respond.JSON(w, http.StatusOK, resp)
}

func parseQuery(r *http.Request) (scrapUC.Query, bool, error) {
	v := r.URL.Query()

	sort, err := scrapUC.ParseSortOrder(v.Get("sort"))
	if err != nil {
		return scrapUC.Query{}, false, err
	}

	refresh, err := ParseRefresh(v)
	if err != nil {
		return scrapUC.Query{}, false, err
	}

	return scrapUC.Query{
		Category: v.Get("category"),
		Search:   v.Get("q"),
		Sort:     sort,
	}, refresh, nil
}

// ParseRefresh reads the optional refresh flag. An absent value is false.
func ParseRefresh(v url.Values) (bool, error) {
	s := v.Get("refresh")
	if s == "" {
		return false, nil
	}
	refresh, err := strconv.ParseBool(s)
	if err != nil {
		return false, &entity.ValidationError{Field: "refresh", Message: "must be a boolean"}
	}
	return refresh, nil
}
