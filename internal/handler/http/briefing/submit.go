package briefing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"newspulse/internal/handler/http/auth"
	"newspulse/internal/handler/http/httperr"
	"newspulse/internal/handler/http/respond"
	briefUC "newspulse/internal/usecase/briefing"
)

// MaxVoiceBytes caps an uploaded recording.
const MaxVoiceBytes = 10 << 20

// TextRequest is the body of POST /briefings/text.
type TextRequest struct {
	RawText string `json:"raw_text"`
}

// TextHandler serves POST /briefings/text.
type TextHandler struct {
	Svc *briefUC.Service
}

func (h TextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.ViewerFromRequest(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, r, respond.NewAppError(http.StatusBadRequest, "invalid JSON body", err))
		return
	}

	out, err := h.Svc.SubmitText(r.Context(), viewer, req.RawText)
	if err != nil {
		writeSubmitError(w, r, err, briefUC.ChannelText)
		return
	}
	respond.JSON(w, http.StatusOK, toOutcomeDTO(out, h.Svc.Location()))
}

// VoiceHandler serves POST /briefings/voice with a multipart "audio" part.
type VoiceHandler struct {
	Svc *briefUC.Service
}

func (h VoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.ViewerFromRequest(r)
	if err != nil {
		httperr.Write(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxVoiceBytes)
	audio, err := readAudio(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.JSON(w, http.StatusRequestEntityTooLarge, respond.AppErrorResponse{Error: "recording too large"})
			return
		}
		writeSubmitError(w, r, err, briefUC.ChannelVoice)
		return
	}

	out, err := h.Svc.SubmitVoice(r.Context(), viewer, audio)
	if err != nil {
		writeSubmitError(w, r, err, briefUC.ChannelVoice)
		return
	}
	respond.JSON(w, http.StatusOK, toOutcomeDTO(out, h.Svc.Location()))
}

// readAudio extracts the "audio" part. A missing part is an empty recording.
func readAudio(r *http.Request) (briefUC.Audio, error) {
	file, header, err := r.FormFile("audio")
	if errors.Is(err, http.ErrMissingFile) {
		return briefUC.Audio{}, briefUC.ErrEmptyAudio
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return briefUC.Audio{}, err
		}
		return briefUC.Audio{}, respond.NewAppError(http.StatusBadRequest, "invalid multipart body", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return briefUC.Audio{}, err
	}
	return briefUC.Audio{Data: data, Filename: header.Filename}, nil
}

// writeSubmitError shows the channel's user text with the error's status.
func writeSubmitError(w http.ResponseWriter, r *http.Request, err error, ch briefUC.Channel) {
	var appErr *respond.AppError
	if errors.As(err, &appErr) {
		httperr.Write(w, r, appErr)
		return
	}
	msg := briefUC.UserMessage(err, ch)
	if msg == "" {
		msg = httperr.Message(err)
	}
	httperr.Write(w, r, respond.NewAppError(httperr.Status(err), msg, err))
}
