package entity

import (
	"context"
	"strconv"
)

// Viewer is the authenticated member on whose behalf an operation runs.
type Viewer struct {
	MemberID int64
	Subject  string
}

// NewViewer builds a Viewer from a token subject.
// The subject must be the decimal member ID.
func NewViewer(subject string) (Viewer, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return Viewer{}, &ValidationError{Field: "sub", Message: "must be a positive member id"}
	}
	return Viewer{MemberID: id, Subject: subject}, nil
}

// Validate checks that the viewer identifies a member.
func (v Viewer) Validate() error {
	if v.MemberID <= 0 {
		return ErrUnauthenticated
	}
	return nil
}

type viewerKey struct{}

// WithViewer stores the viewer in the context.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFromContext returns the viewer stored in the context.
func ViewerFromContext(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(Viewer)
	return v, ok
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
