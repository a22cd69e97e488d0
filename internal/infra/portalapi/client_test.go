package portalapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/config"
	"newspulse/internal/handler/http/requestid"
	"newspulse/internal/resilience/circuitbreaker"
)

func newTestClient(t *testing.T, handler http.Handler, breaker circuitbreaker.Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	return NewClient(config.PortalConfig{
		BaseURL:           srv.URL,
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             100,
		CircuitBreaker:    breaker,
	}, WithLocation(seoul))
}

func TestClient_ListScraps(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"scrapItems": [
				{"sno": 7, "newsId": "n-1", "title": "금리 동결", "category": "economy",
				 "imageUrl": "https://img/1.png", "url": "https://news/1", "summary": "[서론]요약",
				 "scrapedAt": "2025-01-05T09:00:00"},
				{"sno": null, "newsId": 42, "title": "AI 규제", "category": "it", "scrapedAt": null}
			],
			"scrapNewsIds": ["n-1", 42]
		}`)
	}), circuitbreaker.PortalAPIConfig())

	records, err := client.ListScraps(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "/api/ai/mypage/12", gotPath)
	require.Len(t, records, 2)

	assert.Equal(t, int64(7), records[0].Sno)
	assert.Equal(t, "n-1", records[0].NewsID)
	assert.Equal(t, "economy", records[0].Category)
	require.NotNil(t, records[0].ScrapedAt)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), records[0].ScrapedAt.UTC())

	assert.Equal(t, int64(0), records[1].Sno)
	assert.Equal(t, "42", records[1].NewsID)
	assert.Nil(t, records[1].ScrapedAt)
}

func TestClient_ListScraps_UnreadableTimestamp(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"scrapItems": [
			{"sno": 1, "newsId": "n-1", "title": "A", "scrapedAt": "2025-01-05T09:00:00"},
			{"sno": 2, "newsId": "n-2", "title": "B", "scrapedAt": "Sun Jan 05 2025"}
		]}`)
	}), circuitbreaker.PortalAPIConfig())

	records, err := client.ListScraps(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotNil(t, records[0].ScrapedAt)
	assert.Equal(t, "n-2", records[1].NewsID)
	assert.Nil(t, records[1].ScrapedAt)
}

func TestClient_ToggleScrap(t *testing.T) {
	var gotMethod, gotMember, gotNews, gotRequestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotMember = r.URL.Query().Get("memberId")
		gotNews = r.URL.Query().Get("newsId")
		gotRequestID = r.Header.Get(requestid.RequestIDHeader)
		_, _ = io.WriteString(w, "SUCCESS")
	}), circuitbreaker.PortalAPIConfig())

	ctx := requestid.WithRequestID(context.Background(), "req-77")
	err := client.ToggleScrap(ctx, 3, "news&1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "3", gotMember)
	assert.Equal(t, "news&1", gotNews)
	assert.Equal(t, "req-77", gotRequestID)
}

func TestClient_ToggleScrap_GeneratesRequestID(t *testing.T) {
	var gotRequestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(requestid.RequestIDHeader)
	}), circuitbreaker.PortalAPIConfig())

	require.NoError(t, client.ToggleScrap(context.Background(), 1, "n"))
	assert.Len(t, gotRequestID, 36)
}

func TestClient_AnalyzeText(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/brief-delivery/analyze-text", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"intent":"SCHEDULE","scheduled":true,"scheduledAt":"2025-01-05T09:00:00+09:00","message":null}`)
	}), circuitbreaker.PortalAPIConfig())

	result, err := client.AnalyzeText(context.Background(), 5, "내일 아침 9시에 보내줘")
	require.NoError(t, err)

	assert.Equal(t, "내일 아침 9시에 보내줘", body["rawText"])
	assert.Equal(t, float64(5), body["userId"])
	assert.Equal(t, "SCHEDULE", result.Intent)
	assert.True(t, result.Scheduled)
	require.NotNil(t, result.ScheduledAt)
	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), result.ScheduledAt.UTC())
	assert.Nil(t, result.Message)
}

func TestClient_AnalyzeText_UnreadableScheduledAt(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"intent":"SCHEDULE","scheduled":true,"scheduledAt":"내일 아침","message":"등록되었습니다."}`)
	}), circuitbreaker.PortalAPIConfig())

	result, err := client.AnalyzeText(context.Background(), 5, "내일 아침에 보내줘")
	require.NoError(t, err)
	assert.True(t, result.Scheduled)
	assert.Nil(t, result.ScheduledAt)
	require.NotNil(t, result.Message)
	assert.Equal(t, "등록되었습니다.", *result.Message)
}

func TestClient_AnalyzeVoice(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		wantFilename string
		wantType     string
	}{
		{name: "default filename", filename: "", wantFilename: "voice.webm", wantType: "audio/webm"},
		{name: "explicit filename", filename: "memo.wav", wantFilename: "memo.wav", wantType: "audio/wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseMultipartForm(1<<20))
				file, header, err := r.FormFile("audio")
				require.NoError(t, err)
				defer func() { _ = file.Close() }()
				data, _ := io.ReadAll(file)

				assert.Equal(t, tt.wantFilename, header.Filename)
				assert.Equal(t, tt.wantType, header.Header.Get("Content-Type"))
				assert.Equal(t, []byte("RIFF"), data)
				assert.Equal(t, "9", r.FormValue("userId"))
				_, _ = io.WriteString(w, `{"intent":"NONE","scheduled":false,"message":"발송 시간을 이해하지 못했습니다."}`)
			}), circuitbreaker.PortalAPIConfig())

			result, err := client.AnalyzeVoice(context.Background(), 9, []byte("RIFF"), tt.filename)
			require.NoError(t, err)
			assert.False(t, result.Scheduled)
			require.NotNil(t, result.Message)
			assert.Equal(t, "발송 시간을 이해하지 못했습니다.", *result.Message)
		})
	}
}

func TestClient_ListSchedules(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("userId"))
		_, _ = io.WriteString(w, `[
			{"id": 1, "userId": 4, "scheduledAt": "2025-01-05T09:00:00", "status": "PENDING", "createdAt": "2025-01-04T21:10:03.123456"}
		]`)
	}), circuitbreaker.PortalAPIConfig())

	schedules, err := client.ListSchedules(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, int64(1), schedules[0].ID)
	assert.Equal(t, "PENDING", string(schedules[0].Status))
	assert.Equal(t, 9, schedules[0].ScheduledAt.Hour())
	assert.Equal(t, "Asia/Seoul", schedules[0].ScheduledAt.Location().String())
}

func TestClient_ListSchedules_UnreadableTimestamp(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id": 2, "userId": 4, "scheduledAt": "soon", "status": "PENDING", "createdAt": "2025-01-04T21:10:03"}]`)
	}), circuitbreaker.PortalAPIConfig())

	schedules, err := client.ListSchedules(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.True(t, schedules[0].ScheduledAt.IsZero())
	assert.False(t, schedules[0].CreatedAt.IsZero())
}

func TestClient_APIErrorMessage(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"음성 파일이 비어 있습니다."}`, wantMessage: "음성 파일이 비어 있습니다."},
		{name: "raw text", status: http.StatusInternalServerError, body: "upstream exploded", wantMessage: "upstream exploded"},
		{name: "json without message", status: http.StatusBadRequest, body: `{"error":"bad"}`, wantMessage: `{"error":"bad"}`},
		{name: "empty body", status: http.StatusServiceUnavailable, body: "", wantMessage: "HTTP 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}), circuitbreaker.PortalAPIConfig())

			err := client.ToggleScrap(context.Background(), 1, "n")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Error())
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(config.PortalConfig{
		BaseURL:           baseURL,
		Timeout:           time.Second,
		RequestsPerSecond: 100,
		Burst:             10,
	})

	_, err := client.ListScraps(context.Background(), 1)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "list_scraps", transportErr.Op)
}

func TestClient_CircuitBreaker(t *testing.T) {
	breaker := circuitbreaker.Config{
		Name:             "portal-api-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}

	t.Run("server errors open the circuit", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}), breaker)

		for i := 0; i < 2; i++ {
			var apiErr *APIError
			require.True(t, errors.As(client.ToggleScrap(context.Background(), 1, "n"), &apiErr))
		}
		err := client.ToggleScrap(context.Background(), 1, "n")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, int32(2), calls.Load())
		assert.True(t, client.Breaker().IsOpen())
	})

	t.Run("client errors keep it closed", func(t *testing.T) {
		var calls atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}), breaker)

		for i := 0; i < 4; i++ {
			var apiErr *APIError
			require.True(t, errors.As(client.ToggleScrap(context.Background(), 1, "n"), &apiErr))
		}
		assert.Equal(t, int32(4), calls.Load())
		assert.False(t, client.Breaker().IsOpen())
	})
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), circuitbreaker.PortalAPIConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.ToggleScrap(ctx, 1, "n")
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.Canceled)
}
