package http

import (
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// resolves it via [service.AuthService.Authenticate] and, on success, stores
// the user in the request context with [utils.WithUser] before delegating to
// the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header is not exactly "Bearer <token>" ([ErrInvalidAuthorizationHeader]).
//   - The token is expired, forged or otherwise invalid.
//   - The token's user no longer exists.
//
// A failing credential store yields 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authenticate(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}

// optionalAuth lets anonymous requests through untouched. A request that
// does send an "Authorization" header must pass the same checks as in auth.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		h.auth(next).ServeHTTP(w, r)
	})
}

// requireAdmin applies the configured admin policy. It must run after auth.
// Under the role policy only users holding the admin role pass, everyone
// else gets 403. Under the authenticated policy any resolved user passes.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.UserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		if h.settings.AdminPolicy == config.AdminPolicyRole && !user.IsAdmin() {
			logger.FromRequest(r).Warn().Str("user_id", user.ID).Str("uri", r.RequestURI).Msg("admin route denied")
			writeError(w, r, service.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) authenticate(r *http.Request) (models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return models.User{}, ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return models.User{}, ErrInvalidAuthorizationHeader
	}

	return h.services.AuthService.Authenticate(r.Context(), tokenString)
}
