package summary

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"newspulse/internal/domain/entity"
)

func ptr(s string) *string { return &s }

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want entity.ParsedSummary
	}{
		{
			name: "empty text",
			in:   "",
			want: entity.ParsedSummary{Raw: ""},
		},
		{
			name: "all three sections",
			in:   "[서론]A[본론]B[결론]C",
			want: entity.ParsedSummary{Intro: ptr("A"), Body: ptr("B"), Conclusion: ptr("C"), Raw: "[서론]A[본론]B[결론]C"},
		},
		{
			name: "body only",
			in:   "[본론]Only body",
			want: entity.ParsedSummary{Body: ptr("Only body"), Raw: "[본론]Only body"},
		},
		{
			name: "plain text",
			in:   "태그가 없는 요약입니다.",
			want: entity.ParsedSummary{Raw: "태그가 없는 요약입니다."},
		},
		{
			name: "sections are trimmed",
			in:   "[서론]\n  도입 \n[본론]\t내용\n[결론]  결말  ",
			want: entity.ParsedSummary{Intro: ptr("도입"), Body: ptr("내용"), Conclusion: ptr("결말"), Raw: "[서론]\n  도입 \n[본론]\t내용\n[결론]  결말  "},
		},
		{
			name: "intro without body ends at text end",
			in:   "[서론]A [결론]C",
			want: entity.ParsedSummary{Intro: ptr("A [결론]C"), Conclusion: ptr("C"), Raw: "[서론]A [결론]C"},
		},
		{
			name: "only first occurrence counts",
			in:   "[서론]A[서론]B[본론]C",
			want: entity.ParsedSummary{Intro: ptr("A[서론]B"), Body: ptr("C"), Raw: "[서론]A[서론]B[본론]C"},
		},
		{
			name: "end marker before start is ignored",
			in:   "[본론]B[서론]A",
			want: entity.ParsedSummary{Intro: ptr("A"), Body: ptr("B[서론]A"), Raw: "[본론]B[서론]A"},
		},
		{
			name: "empty section is present but blank",
			in:   "[서론][본론]x",
			want: entity.ParsedSummary{Intro: ptr(""), Body: ptr("x"), Raw: "[서론][본론]x"},
		},
		{
			name: "incomplete marker is not a marker",
			in:   "[서론 A [본론",
			want: entity.ParsedSummary{Raw: "[서론 A [본론"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParse_NoMarkersKeepsRaw(t *testing.T) {
	got := Parse("just text")
	assert.False(t, got.HasSections())
	assert.Equal(t, "just text", got.Raw)
}

func TestScan_RecordsFirstOffsets(t *testing.T) {
	o := scan("x[결론]y[본론]z[서론]")
	assert.Equal(t, offsets{len("x[결론]y[본론]z"), len("x[결론]y"), 1}, o)
}
