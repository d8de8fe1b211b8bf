package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/models"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			body:       `{"name":"Ana","identifier":"ana@x.com","password":"secret1"}`,
			wantStatus: http.StatusOK,
			wantBody:   `"token":"jwt"`,
		},
		{
			name:       "duplicate identifier",
			body:       `{"name":"Ana","identifier":"ana@x.com","password":"secret1"}`,
			err:        store.ErrEmailAlreadyExists,
			wantStatus: http.StatusConflict,
			wantBody:   store.ErrEmailAlreadyExists.Error(),
		},
		{
			name:       "validation failure carries details",
			body:       `{"name":"","identifier":"ana@x.com","password":"secret1"}`,
			err:        fmt.Errorf("%w: name is required", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantBody:   "name is required",
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrInvalidJSON.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.RegisterRequest
			h := newTestHandler(&service.Services{
				AuthService: &fakeAuthService{
					registerFn: func(_ context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
						got = req
						if tt.err != nil {
							return models.AuthResponse{}, tt.err
						}
						return models.AuthResponse{Token: "jwt", User: customer.View()}, nil
					},
				},
			}, defaultSettings())

			rec := doRequest(h.Init(), http.MethodPost, "/api/auth/register", tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ana@x.com", got.Identifier)
			}
		})
	}
}

func TestRegister_NeverLeaksPasswordHash(t *testing.T) {
	user := customer
	user.PasswordHash = "$2a$10$secret-hash"

	h := newTestHandler(&service.Services{
		AuthService: &fakeAuthService{
			registerFn: func(context.Context, models.RegisterRequest) (models.AuthResponse, error) {
				return models.AuthResponse{Token: "jwt", User: user.View()}, nil
			},
		},
	}, defaultSettings())

	rec := doRequest(h.Init(), http.MethodPost, "/api/auth/register", `{"name":"Ana","identifier":"ana@x.com","password":"secret1"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"wrong credentials", service.ErrWrongPassword, http.StatusUnauthorized},
		{"missing fields", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"store failure", fmt.Errorf("user search by e-mail failed: %w", assert.AnError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			login := func(context.Context, models.LoginRequest) (models.AuthResponse, error) {
				if tt.err != nil {
					return models.AuthResponse{}, tt.err
				}
				return models.AuthResponse{Token: "jwt", User: customer.View()}, nil
			}
			h := newTestHandler(&service.Services{
				AuthService: &fakeAuthService{loginFn: login, adminLoginFn: login},
			}, defaultSettings())
			router := h.Init()

			for _, path := range []string{"/api/auth/login", "/api/admin/login"} {
				rec := doRequest(router, http.MethodPost, path, `{"identifier":"ana@x.com","password":"secret1"}`, "")

				assert.Equal(t, tt.wantStatus, rec.Code, path)
				if tt.wantStatus == http.StatusInternalServerError {
					assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
				}
			}
		})
	}
}

func TestMe(t *testing.T) {
	h := newTestHandler(&service.Services{}, defaultSettings())
	router := h.Init()

	rec := doRequest(router, http.MethodGet, "/api/auth/me", "", "ana")
	require.Equal(t, http.StatusOK, rec.Code)

	var view models.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, customer.View(), view)

	rec = doRequest(router, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
