package briefing

import (
	"errors"

	"newspulse/internal/domain/entity"
	"newspulse/internal/infra/portalapi"
)

// Fallback texts per channel when an error carries nothing to show.
const (
	voiceFailureText = "음성 분석에 실패했습니다."
	textFailureText  = "요청 처리에 실패했습니다."
)

// UserMessage converts a submission error into the text shown to the member.
// Backend messages are shown as they are; other failures use the channel's
// generic text. A stale response yields "".
func UserMessage(err error, ch Channel) string {
	if err == nil {
		return ""
	}

	var apiErr *portalapi.APIError
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, ErrStaleResponse):
		return ""
	case errors.Is(err, ErrEmptyAudio):
		return "녹음된 음성이 없습니다. 다시 시도해 주세요."
	case errors.Is(err, ErrEmptyText):
		return "요청 내용을 입력해 주세요."
	case errors.Is(err, entity.ErrUnauthenticated):
		return "로그인이 필요합니다."
	case errors.Is(err, portalapi.ErrUnavailable):
		return "서비스가 일시적으로 불안정합니다. 잠시 후 다시 시도해 주세요."
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &verr):
		return verr.Error()
	}

	if ch == ChannelVoice {
		return voiceFailureText
	}
	return textFailureText
}
