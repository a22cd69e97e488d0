package scrap

import (
	"net/http"

	"newspulse/internal/handler/http/auth"
	"newspulse/internal/handler/http/httperr"
	"newspulse/internal/handler/http/respond"
	scrapUC "newspulse/internal/usecase/scrap"
)

// UnscrapHandler serves DELETE /scraps/{newsId}.
// Removing a scrap that is not in the member's list succeeds without a
// backend call.
type UnscrapHandler struct {
	Svc *scrapUC.Service
}

func (h UnscrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.ViewerFromRequest(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	if err := h.Svc.Unscrap(r.Context(), viewer, r.PathValue("newsId")); err != nil {
		httperr.Write(w, r, err)
		return
	}
	respond.NoContent(w)
}
