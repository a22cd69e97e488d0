// Package summary provides the HTTP handler that splits AI summaries into
// sections.
package summary

import (
	"encoding/json"
	"errors"
	"net/http"

	"newspulse/internal/handler/http/httperr"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/metrics"
	summaryUC "newspulse/internal/usecase/summary"
)

// ParseRequest is the body of POST /summaries/parse. A null text is treated
// as empty.
type ParseRequest struct {
	Text *string `json:"text"`
}

// ParseResponse carries the sections found in the text. A section is null
// when its marker was absent.
type ParseResponse struct {
	Intro       *string `json:"intro"`
	Body        *string `json:"body"`
	Conclusion  *string `json:"conclusion"`
	Raw         string  `json:"raw"`
	Preview     string  `json:"preview"`
	HasSections bool    `json:"has_sections"`
}

// ParseHandler serves POST /summaries/parse.
type ParseHandler struct{}

func (ParseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.JSON(w, http.StatusRequestEntityTooLarge, respond.AppErrorResponse{Error: "request body too large"})
			return
		}
		httperr.Write(w, r, respond.NewAppError(http.StatusBadRequest, "invalid JSON body", err))
		return
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}

	parsed := summaryUC.Parse(text)
	metrics.RecordSummaryParsed(parsed)

	respond.JSON(w, http.StatusOK, ParseResponse{
		Intro:       parsed.Intro,
		Body:        parsed.Body,
		Conclusion:  parsed.Conclusion,
		Raw:         parsed.Raw,
		Preview:     summaryUC.Preview(text),
		HasSections: parsed.HasSections(),
	})
}

// Register registers the summary routes with mux.
func Register(mux *http.ServeMux) {
	mux.Handle("POST /summaries/parse", ParseHandler{})
}
