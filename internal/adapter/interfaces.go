// Package adapter is a client for the shop HTTP API.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// ShopAdapter talks to a running shop server. Implementations keep the
// bearer token of the last successful login and attach it to every request.
type ShopAdapter interface {
	// SetToken stores the bearer token used by subsequent requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before any login.
	Token() string

	// Login signs in through POST /api/auth/login and stores the token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// AdminLogin signs in through POST /api/admin/login and stores the token.
	AdminLogin(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)

	// Health returns the server health. A 503 answer is not an error.
	Health(ctx context.Context) (models.HealthResponse, error)
}
