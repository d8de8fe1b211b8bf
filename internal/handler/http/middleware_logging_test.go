package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
)

func bufferedHandler(buf *bytes.Buffer) *Handler {
	h := newTestHandler(&service.Services{}, defaultSettings())
	h.logger = &logger.Logger{Logger: zerolog.New(buf)}
	return h
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := bufferedHandler(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders?x=1", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"uri":"/api/orders?x=1"`)
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":7`)
	assert.Contains(t, out, `"trace_id"`)
}

func TestWithLogging_DefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	h := bufferedHandler(&buf)

	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Contains(t, buf.String(), `"status":200`)
}

func TestWithLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, `"level":"info"`},
		{http.StatusNotFound, `"level":"warn"`},
		{http.StatusBadGateway, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			h := bufferedHandler(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			h.withTraceID(h.withLogging(next)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Contains(t, buf.String(), tt.wantLevel)
		})
	}
}

