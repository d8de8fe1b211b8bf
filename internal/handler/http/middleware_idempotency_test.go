package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
)

type memIdempotencyStore struct {
	mu         sync.Mutex
	records    map[string]store.IdempotencyRecord
	reserveErr error
	released   []string
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{records: make(map[string]store.IdempotencyRecord)}
}

func (m *memIdempotencyStore) Reserve(_ context.Context, key, fingerprint string, _ time.Duration) (store.IdempotencyRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reserveErr != nil {
		return store.IdempotencyRecord{}, false, m.reserveErr
	}
	if record, ok := m.records[key]; ok {
		return record, false, nil
	}
	m.records[key] = store.IdempotencyRecord{State: store.IdempotencyProcessing, Fingerprint: fingerprint}
	return store.IdempotencyRecord{}, true, nil
}

func (m *memIdempotencyStore) Complete(_ context.Context, key string, record store.IdempotencyRecord, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = record
	return nil
}

func (m *memIdempotencyStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	m.released = append(m.released, key)
	return nil
}

// countingHandler answers with status and counts its calls.
type countingHandler struct {
	calls  int
	status int
}

func (c *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.calls++
	utils.WriteJSON(w, map[string]int{"call": c.calls}, c.status)
}

func idempotentRequest(key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	return req
}

func newIdempotentHandler(s store.IdempotencyStore) *Handler {
	h := newTestHandler(&service.Services{}, defaultSettings())
	h.idempotency = s
	return h
}

func TestWithIdempotency_ReplaysCompletedResponse(t *testing.T) {
	s := newMemIdempotencyStore()
	next := &countingHandler{status: http.StatusCreated}
	mw := newIdempotentHandler(s).withIdempotency(next)

	first := httptest.NewRecorder()
	mw.ServeHTTP(first, idempotentRequest("k-1", `{"total":10}`))

	second := httptest.NewRecorder()
	mw.ServeHTTP(second, idempotentRequest("k-1", `{"total":10}`))

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, "true", second.Header().Get(idempotentReplayedHeader))
	assert.Empty(t, first.Header().Get(idempotentReplayedHeader))
}

func TestWithIdempotency_DifferentBodyIsRejected(t *testing.T) {
	s := newMemIdempotencyStore()
	next := &countingHandler{status: http.StatusCreated}
	mw := newIdempotentHandler(s).withIdempotency(next)

	mw.ServeHTTP(httptest.NewRecorder(), idempotentRequest("k-1", `{"total":10}`))

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, idempotentRequest("k-1", `{"total":99}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 1, next.calls)
}

func TestWithIdempotency_InFlightKeyConflicts(t *testing.T) {
	s := newMemIdempotencyStore()
	h := newIdempotentHandler(s)

	var nested *httptest.ResponseRecorder
	var mw http.Handler
	mw = h.withIdempotency(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if nested == nil {
			nested = httptest.NewRecorder()
			mw.ServeHTTP(nested, idempotentRequest("k-1", `{}`))
		}
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, idempotentRequest("k-1", `{}`))

	require.NotNil(t, nested)
	assert.Equal(t, http.StatusConflict, nested.Code)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWithIdempotency_FailedRequestReleasesKey(t *testing.T) {
	s := newMemIdempotencyStore()
	next := &countingHandler{status: http.StatusBadRequest}
	mw := newIdempotentHandler(s).withIdempotency(next)

	mw.ServeHTTP(httptest.NewRecorder(), idempotentRequest("k-1", `{}`))
	next.status = http.StatusCreated
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, idempotentRequest("k-1", `{}`))

	assert.Equal(t, 2, next.calls)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"k-1"}, s.released)
}

func TestWithIdempotency_CallerIsPartOfFingerprint(t *testing.T) {
	s := newMemIdempotencyStore()
	next := &countingHandler{status: http.StatusCreated}
	mw := newIdempotentHandler(s).withIdempotency(next)

	anaReq := idempotentRequest("k-1", `{}`)
	anaReq = anaReq.WithContext(utils.WithUser(anaReq.Context(), customer))
	mw.ServeHTTP(httptest.NewRecorder(), anaReq)

	adminReq := idempotentRequest("k-1", `{}`)
	adminReq = adminReq.WithContext(utils.WithUser(adminReq.Context(), admin))
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, adminReq)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWithIdempotency_Passthrough(t *testing.T) {
	tests := []struct {
		name  string
		store store.IdempotencyStore
		key   string
	}{
		{"no store configured", nil, "k-1"},
		{"no key sent", newMemIdempotencyStore(), ""},
		{"store unavailable", &memIdempotencyStore{records: map[string]store.IdempotencyRecord{}, reserveErr: errors.New("redis down")}, "k-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &countingHandler{status: http.StatusCreated}
			mw := newIdempotentHandler(tt.store).withIdempotency(next)

			for range 2 {
				rec := httptest.NewRecorder()
				mw.ServeHTTP(rec, idempotentRequest(tt.key, `{}`))
				assert.Equal(t, http.StatusCreated, rec.Code)
			}
			assert.Equal(t, 2, next.calls)
		})
	}
}

func TestWithIdempotency_InvalidKey(t *testing.T) {
	next := &countingHandler{status: http.StatusCreated}
	mw := newIdempotentHandler(newMemIdempotencyStore()).withIdempotency(next)

	for _, key := range []string{strings.Repeat("k", maxIdempotencyKeyLength+1), " padded "} {
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, idempotentRequest(key, `{}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code, key)
	}
	assert.Zero(t, next.calls)
}
