package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
)

// errorStatusMap is consulted in order; the first sentinel matched by
// errors.Is decides the status.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidQueryParam, http.StatusBadRequest},
	{ErrInvalidIdempotencyKey, http.StatusBadRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrImageStorageDisabled, http.StatusNotImplemented},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrProductNotFound, http.StatusNotFound},
	{store.ErrOrderNotFound, http.StatusNotFound},
}

// statusFromError returns the HTTP status for err together with the sentinel
// that matched it. Unknown errors map to 500 with a nil sentinel.
func statusFromError(err error) (int, error) {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status, entry.err
		}
	}
	return http.StatusInternalServerError, nil
}

// isIdentityError reports whether sentinel comes from reading or verifying the
// bearer token. Login failures keep their own message.
func isIdentityError(sentinel error) bool {
	return errors.Is(sentinel, ErrEmptyAuthorizationHeader) ||
		errors.Is(sentinel, ErrInvalidAuthorizationHeader) ||
		errors.Is(sentinel, service.ErrTokenIsExpiredOrInvalid)
}

// writeError answers with the status mapped from err. Client errors carry the
// sentinel's message, validation errors their full text, and server errors
// only the generic status text. The full error is always logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, sentinel := statusFromError(err)

	var message string
	switch {
	case sentinel == nil:
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
		message = http.StatusText(status)
	case isIdentityError(sentinel):
		log.Debug().Err(err).Msg("identity check failed")
		message = ErrUnauthorized.Error()
	case errors.Is(sentinel, service.ErrInvalidDataProvided):
		log.Debug().Err(err).Msg("invalid request data")
		message = err.Error()
	default:
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
		message = sentinel.Error()
	}

	utils.WriteError(w, message, status)
}
