package briefing

import (
	"net/http"

	"newspulse/internal/handler/http/auth"
	"newspulse/internal/handler/http/httperr"
	"newspulse/internal/handler/http/respond"
	briefUC "newspulse/internal/usecase/briefing"
)

// SchedulesHandler serves GET /briefings/schedules.
type SchedulesHandler struct {
	Svc *briefUC.Service
}

func (h SchedulesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.ViewerFromRequest(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	schedules, err := h.Svc.Schedules(r.Context(), viewer)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToSchedules(schedules, h.Svc.Location()))
}
