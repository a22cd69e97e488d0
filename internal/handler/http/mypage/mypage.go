// Package mypage serves the member page: scraps and briefing schedules in one
// response.
package mypage

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/auth"
	"newspulse/internal/handler/http/briefing"
	"newspulse/internal/handler/http/httperr"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/handler/http/scrap"
	briefUC "newspulse/internal/usecase/briefing"
	scrapUC "newspulse/internal/usecase/scrap"
)

// Response is the body of GET /mypage.
type Response struct {
	MemberID  int64                  `json:"member_id"`
	Scraps    scrap.ListResponse     `json:"scraps"`
	Schedules []briefing.ScheduleDTO `json:"schedules"`
}

// Handler serves GET /mypage. The scrap list and the schedules are fetched
// concurrently; either failure fails the request.
type Handler struct {
	Scraps    *scrapUC.Service
	Briefings *briefUC.Service
	Catalog   scrapUC.CategoryRanker
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.ViewerFromRequest(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	refresh, err := scrap.ParseRefresh(r.URL.Query())
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	var (
		items     []entity.ScrapRecord
		schedules []entity.Schedule
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		items, err = h.Scraps.List(ctx, viewer, refresh)
		return err
	})
	g.Go(func() error {
		var err error
		schedules, err = h.Briefings.Schedules(ctx, viewer)
		return err
	})
	if err := g.Wait(); err != nil {
		httperr.Write(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, Response{
		MemberID:  viewer.MemberID,
		Scraps:    scrap.BuildList(items, scrapUC.Query{Sort: scrapUC.SortDesc}, h.Catalog),
		Schedules: briefing.ToSchedules(schedules, h.Briefings.Location()),
	})
}

// Register registers the member page route with mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET /mypage", h)
}
