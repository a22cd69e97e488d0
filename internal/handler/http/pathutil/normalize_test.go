package pathutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/scraps", want: "/scraps"},
		{path: "/scraps?category=it&q=ai", want: "/scraps"},
		{path: "/scraps/", want: "/scraps"},
		{path: "/scraps/n-123", want: "/scraps/:newsId"},
		{path: "/scraps/42/", want: "/scraps/:newsId"},
		{path: "/scraps/42/extra", want: UnmatchedLabel},
		{path: "/summaries/parse", want: "/summaries/parse"},
		{path: "/briefings/voice", want: "/briefings/voice"},
		{path: "/briefings/schedules", want: "/briefings/schedules"},
		{path: "/mypage", want: "/mypage"},
		{path: "/health", want: "/health"},
		{path: "/", want: "/"},
		{path: "/wp-login.php", want: UnmatchedLabel},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}

func TestNormalizePath_BoundedCardinality(t *testing.T) {
	labels := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		labels[NormalizePath(fmt.Sprintf("/scraps/news-%d", i))] = struct{}{}
		labels[NormalizePath(fmt.Sprintf("/probe/%d", i))] = struct{}{}
	}
	assert.Len(t, labels, 2)
	assert.LessOrEqual(t, len(labels), GetExpectedCardinality())
}
