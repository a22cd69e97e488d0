// Package httperr maps use case and portal client errors to gateway HTTP
// responses.
package httperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/infra/portalapi"
	"newspulse/internal/observability/logging"
	"newspulse/internal/usecase/briefing"
	"newspulse/internal/usecase/scrap"
)

// Status returns the HTTP status code for err.
func Status(err error) int {
	var verr *entity.ValidationError
	var apiErr *portalapi.APIError
	var tErr *portalapi.TransportError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, scrap.ErrInvalidSort),
		errors.Is(err, briefing.ErrEmptyAudio),
		errors.Is(err, briefing.ErrEmptyText):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, briefing.ErrStaleResponse):
		return http.StatusConflict
	case errors.Is(err, portalapi.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		if apiErr.IsClientError() {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &tErr), errors.Is(err, scrap.ErrUnscrapFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Message returns the text shown to the caller for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, scrap.ErrUnscrapFailed) {
		return scrap.ErrUnscrapFailed.Error()
	}
	if errors.Is(err, scrap.ErrInvalidSort) || errors.Is(err, entity.ErrInvalidInput) {
		return err.Error()
	}
	if errors.Is(err, briefing.ErrStaleResponse) {
		return briefing.ErrStaleResponse.Error()
	}

	var tErr *portalapi.TransportError
	if errors.As(err, &tErr) && !errors.Is(err, context.DeadlineExceeded) {
		return "포털 서버에 연결할 수 없습니다."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "요청 시간이 초과되었습니다."
	}
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return briefing.UserMessage(err, briefing.ChannelText)
}

// FromError wraps err with its status and caller-facing message.
func FromError(err error) *respond.AppError {
	if err == nil {
		return nil
	}
	return respond.NewAppError(Status(err), Message(err), err)
}

// Write logs err with the request logger and writes the error response.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *respond.AppError
	if !errors.As(err, &appErr) {
		appErr = FromError(err)
	}
	logger := logging.FromContext(r.Context())
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.Int("status", appErr.Code),
			slog.String("error", respond.SanitizeError(err)))
	} else {
		logger.Info("request rejected",
			slog.Int("status", appErr.Code),
			slog.String("error", respond.SanitizeError(err)))
	}
	respond.JSON(w, appErr.Code, respond.AppErrorResponse{Error: appErr.UserMsg})
}
