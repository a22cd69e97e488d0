// Package briefing submits briefing delivery requests by voice or text and
// turns the analysis result into the message shown to the member.
package briefing

import "errors"

var (
	// ErrEmptyAudio indicates that no audio was recorded.
	ErrEmptyAudio = errors.New("recorded audio is empty")

	// ErrEmptyText indicates a blank delivery request text.
	ErrEmptyText = errors.New("request text is empty")

	// ErrStaleResponse is returned when a newer submission was issued while
	// this one was in flight. Its result must not be displayed.
	ErrStaleResponse = errors.New("superseded by a newer submission")
)
