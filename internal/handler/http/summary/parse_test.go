package summary_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/handler/http/summary"
)

func str(s string) *string { return &s }

func TestParseHandler(t *testing.T) {
	tests := []struct {
		name string
		body string
		want summary.ParseResponse
	}{
		{
			name: "all sections",
			body: `{"text":"[서론] A [본론] B [결론] C"}`,
			want: summary.ParseResponse{
				Intro: str("A"), Body: str("B"), Conclusion: str("C"),
				Raw: "[서론] A [본론] B [결론] C", Preview: "A", HasSections: true,
			},
		},
		{
			name: "body only",
			body: `{"text":"[본론]Only body"}`,
			want: summary.ParseResponse{
				Body: str("Only body"), Raw: "[본론]Only body", Preview: "[본론]Only body", HasSections: true,
			},
		},
		{
			name: "plain text",
			body: `{"text":"그냥 요약입니다."}`,
			want: summary.ParseResponse{Raw: "그냥 요약입니다.", Preview: "그냥 요약입니다."},
		},
		{
			name: "null text behaves like empty",
			body: `{"text":null}`,
			want: summary.ParseResponse{},
		},
		{
			name: "missing text",
			body: `{}`,
			want: summary.ParseResponse{},
		},
	}

	mux := http.NewServeMux()
	summary.Register(mux)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/summaries/parse", strings.NewReader(tt.body)))
			require.Equal(t, http.StatusOK, rr.Code)

			var got summary.ParseResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("response mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseHandler_NullSectionsInJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	summary.ParseHandler{}.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/summaries/parse", strings.NewReader(`{"text":"plain"}`)))
	assert.JSONEq(t, `{"intro":null,"body":null,"conclusion":null,"raw":"plain","preview":"plain","has_sections":false}`, rr.Body.String())
}

func TestParseHandler_InvalidJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	summary.ParseHandler{}.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/summaries/parse", strings.NewReader(`{"text":`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid JSON body"}`, rr.Body.String())
}
