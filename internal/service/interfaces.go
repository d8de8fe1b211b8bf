package service

import (
	"context"

	"github.com/MKhiriev/go-shop-keeper/models"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	// AdminLogin behaves like Login but also rejects non-admin accounts with
	// ErrWrongPassword.
	AdminLogin(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Authenticate verifies tokenString and resolves its subject against the
	// credential store. A token whose user no longer exists is invalid.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	GetUser(ctx context.Context, id string) (models.User, error)
	// EnsureAdmin creates the admin account for email or promotes the
	// existing one.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	RequestImageUpload(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error)
}

type OrderService interface {
	// PlaceOrder binds the order to the user found in ctx, if any.
	PlaceOrder(ctx context.Context, in models.OrderInput) (models.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

type ContactService interface {
	SubmitContact(ctx context.Context, in models.ContactInput) (models.Contact, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

type HealthService interface {
	Check(ctx context.Context) models.HealthResponse
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// CatalogServiceWrapper defines middleware composition for CatalogService.
// Implementations wrap an existing CatalogService to add behavior such as
// logging or validating.
type CatalogServiceWrapper interface {
	Wrap(CatalogService) CatalogService
}

// OrderServiceWrapper defines middleware composition for OrderService.
type OrderServiceWrapper interface {
	Wrap(OrderService) OrderService
}

// ContactServiceWrapper defines middleware composition for ContactService.
type ContactServiceWrapper interface {
	Wrap(ContactService) ContactService
}
