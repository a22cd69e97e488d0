package briefing

import (
	"net/http"

	briefUC "newspulse/internal/usecase/briefing"
)

// Register registers the briefing routes with mux.
func Register(mux *http.ServeMux, svc *briefUC.Service) {
	mux.Handle("POST /briefings/text", TextHandler{Svc: svc})
	mux.Handle("POST /briefings/voice", VoiceHandler{Svc: svc})
	mux.Handle("GET  /briefings/schedules", SchedulesHandler{Svc: svc})
}
