package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
)

const (
	idempotencyKeyHeader      = "Idempotency-Key"
	idempotentReplayedHeader  = "Idempotent-Replayed"
	idempotencyProcessingTTL  = 30 * time.Second
	maxIdempotencyKeyLength   = 255
	defaultIdempotencyTTL     = 24 * time.Hour
	maxIdempotentRequestBytes = 1 << 20
)

// withIdempotency answers retries of a request sent under the same
// Idempotency-Key with the stored response instead of running the handler
// again.
//
// The request fingerprint is an HMAC over method, path, caller and body.
// Reusing a key for a different request yields 422, hitting a key whose
// first request is still running yields 409. Only 2xx responses are stored;
// any other outcome releases the key. When the store fails the request
// runs without idempotency.
func (h *Handler) withIdempotency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(idempotencyKeyHeader)
		if h.idempotency == nil || key == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		if len(key) > maxIdempotencyKeyLength || strings.TrimSpace(key) != key {
			writeError(w, r, ErrInvalidIdempotencyKey)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxIdempotentRequestBytes+1))
		if err != nil {
			log.Err(err).Str("func", "*Handler.withIdempotency").Msg("failed to read request body")
			writeError(w, r, ErrInvalidJSON)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		fingerprint := h.requestFingerprint(r, body)
		ctx := r.Context()

		record, reserved, err := h.idempotency.Reserve(ctx, key, fingerprint, idempotencyProcessingTTL)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.withIdempotency").Msg("idempotency store unavailable, proceeding without it")
			next.ServeHTTP(w, r)
			return
		}

		if !reserved {
			switch {
			case record.Fingerprint != fingerprint:
				log.Debug().Str("idempotency_key", key).Msg("idempotency key reused with a different request")
				utils.WriteError(w, "Idempotency-Key was already used for a different request", http.StatusUnprocessableEntity)
			case record.State == store.IdempotencyCompleted:
				log.Debug().Str("idempotency_key", key).Msg("replaying stored response")
				replay(w, record)
			default:
				utils.WriteError(w, "a request with this Idempotency-Key is still being processed", http.StatusConflict)
			}
			return
		}

		rw := &responseWriter{ResponseWriter: w, captureBody: true}
		next.ServeHTTP(rw, r)

		// the response is already sent, so the bookkeeping must outlive the request
		storeCtx := context.WithoutCancel(ctx)

		status := rw.statusCode()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			if err = h.idempotency.Release(storeCtx, key); err != nil {
				log.Warn().Err(err).Str("func", "*Handler.withIdempotency").Msg("failed to release idempotency key")
			}
			return
		}

		completed := store.IdempotencyRecord{
			State:       store.IdempotencyCompleted,
			Fingerprint: fingerprint,
			StatusCode:  status,
			Headers:     map[string]string{"Content-Type": rw.Header().Get("Content-Type")},
			Body:        rw.body.Bytes(),
		}
		if err = h.idempotency.Complete(storeCtx, key, completed, h.idempotencyTTL()); err != nil {
			log.Warn().Err(err).Str("func", "*Handler.withIdempotency").Msg("failed to store idempotent response")
		}
	})
}

func (h *Handler) requestFingerprint(r *http.Request, body []byte) string {
	var caller string
	if user, ok := utils.UserFromContext(r.Context()); ok {
		caller = user.ID
	}

	return utils.HashString(r.Method+" "+r.URL.Path+"\n"+caller+"\n"+string(body), h.settings.IdempotencyHashKey)
}

func (h *Handler) idempotencyTTL() time.Duration {
	if h.settings.IdempotencyTTL > 0 {
		return h.settings.IdempotencyTTL
	}
	return defaultIdempotencyTTL
}

func replay(w http.ResponseWriter, record store.IdempotencyRecord) {
	for name, value := range record.Headers {
		if value != "" {
			w.Header().Set(name, value)
		}
	}
	w.Header().Set(idempotentReplayedHeader, "true")
	w.WriteHeader(record.StatusCode)
	_, _ = w.Write(record.Body)
}
