package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store. E-mails are stored already
// normalized and are unique across users.
type UserRepository interface {
	// CreateUser inserts user. A duplicate e-mail yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail yields ErrNoUserWasFound when nothing matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID yields ErrNoUserWasFound when nothing matches.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// SetUserRole yields ErrNoUserWasFound when nothing matches.
	SetUserRole(ctx context.Context, id string, role models.Role) error
}

// ProductRepository stores the catalog.
type ProductRepository interface {
	// ListProducts returns products matching filter, newest first.
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	// UpdateProduct replaces every writable field of the product with
	// product.ID. CreatedAt is left untouched.
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// OrderRepository stores placed orders together with their items.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	// ListOrdersByUser returns the orders bound to userID, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	// ListOrders returns every order, newest first.
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// ContactRepository stores contact form messages. Messages are write-once.
type ContactRepository interface {
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	// ListContacts returns every message, newest first.
	ListContacts(ctx context.Context) ([]models.Contact, error)
}

// HealthChecker reports whether the active backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// IdempotencyStore keeps the outcome of requests sent under an
// Idempotency-Key so that retries can be answered without running the
// handler twice.
type IdempotencyStore interface {
	// Reserve claims key for a request with the given fingerprint for ttl.
	// When the key is already taken, reserved is false and record describes
	// the current holder.
	Reserve(ctx context.Context, key, fingerprint string, ttl time.Duration) (record IdempotencyRecord, reserved bool, err error)
	// Complete stores the final response for key for ttl.
	Complete(ctx context.Context, key string, record IdempotencyRecord, ttl time.Duration) error
	// Release drops the reservation so that the request can be retried.
	Release(ctx context.Context, key string) error
}

// IdempotencyState tells whether a reserved request has finished.
type IdempotencyState string

const (
	IdempotencyProcessing IdempotencyState = "processing"
	IdempotencyCompleted  IdempotencyState = "completed"
)

// IdempotencyRecord is the value stored under an idempotency key.
type IdempotencyRecord struct {
	State       IdempotencyState  `json:"state"`
	Fingerprint string            `json:"fingerprint"`
	StatusCode  int               `json:"status_code,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        []byte            `json:"body,omitempty"`
}
