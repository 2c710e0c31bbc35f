package sorgu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adres-api/models"
)

type stubFetcher struct {
	resp  models.UpstreamResponse
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, tc string) models.UpstreamResponse {
	s.calls = append(s.calls, tc)
	return s.resp
}

func TestLookup_InvalidIdentity(t *testing.T) {
	f := &stubFetcher{}
	rec := &fakeRecorder{}
	svc := NewService(f, WithRecorder(rec))

	body, status := svc.Lookup(context.Background(), "123")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.Response{"error": "Geçersiz TC kimlik numarası"}, body)
	assert.Empty(t, f.calls, "upstream must not be called")
	assert.Equal(t, []string{OutcomeInvalidIdentity}, rec.lookups)
}

func TestLookup_Success(t *testing.T) {
	f := &stubFetcher{resp: models.UpstreamResponse{
		"il": "İstanbul", "ilce": "Kadıköy", "mahalle": "Merkez", "reklam": "kahin.org",
	}}
	rec := &fakeRecorder{}
	svc := NewService(f, WithRecorder(rec))

	body, status := svc.Lookup(context.Background(), "10000000146")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.Response{
		"status":  "success",
		"il":      "İstanbul",
		"ilce":    "Kadıköy",
		"mahalle": "Merkez",
		"adres":   "Merkez Mah. Kadıköy/İstanbul",
	}, body)
	assert.Equal(t, []string{"10000000146"}, f.calls)
	assert.Equal(t, []string{OutcomeSuccess}, rec.lookups)
}

func TestLookup_ErrorPayloadPassthrough(t *testing.T) {
	tests := []struct {
		name       string
		resp       models.UpstreamResponse
		wantBody   models.Response
		wantStatus int
	}{
		{
			name:       "transport error keeps 200",
			resp:       models.UpstreamResponse{"error": "API hatası: timeout"},
			wantBody:   models.Response{"error": "API hatası: timeout"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "format error keeps 200",
			resp:       models.UpstreamResponse{"error": "Geçersiz JSON yanıtı"},
			wantBody:   models.Response{"error": "Geçersiz JSON yanıtı"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "upstream code becomes status",
			resp:       models.UpstreamResponse{"error": "bulunamadı", "code": float64(404), "detay": "x"},
			wantBody:   models.Response{"error": "bulunamadı", "detay": "x"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unusable code is dropped",
			resp:       models.UpstreamResponse{"error": "hata", "code": "abc"},
			wantBody:   models.Response{"error": "hata"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			svc := NewService(&stubFetcher{resp: tt.resp}, WithRecorder(rec))

			body, status := svc.Lookup(context.Background(), "10000000146")

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, []string{OutcomeUpstreamError}, rec.lookups)
		})
	}
}

func TestLookup_FalsyErrorIsNotAnError(t *testing.T) {
	svc := NewService(&stubFetcher{resp: models.UpstreamResponse{"error": "", "il": "Van"}})

	body, status := svc.Lookup(context.Background(), "10000000146")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Van", body["adres"])
	_, hasErr := body["error"]
	assert.False(t, hasErr)
}

func TestLookup_ThroughClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	defer close(release)

	svc := NewService(NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}))

	body, status := svc.Lookup(context.Background(), "10000000146")

	assert.Equal(t, http.StatusOK, status)
	msg, ok := body["error"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(msg, "API hatası: "))
}
