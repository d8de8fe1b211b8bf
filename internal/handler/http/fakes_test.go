package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// ─────────────────────────────────────────────
// Func-field service fakes
// ─────────────────────────────────────────────

type fakeAuthService struct {
	registerFn     func(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	loginFn        func(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	adminLoginFn   func(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	authenticateFn func(ctx context.Context, token string) (models.User, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) AdminLogin(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return f.adminLoginFn(ctx, req)
}

func (f *fakeAuthService) CreateToken(context.Context, models.User) (models.Token, error) {
	return models.Token{}, nil
}

func (f *fakeAuthService) ParseToken(context.Context, string) (models.Token, error) {
	return models.Token{}, nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, token)
	}
	return models.User{}, service.ErrTokenIsExpiredOrInvalid
}

func (f *fakeAuthService) GetUser(context.Context, string) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeAuthService) EnsureAdmin(context.Context, string, string) error {
	return nil
}

// tokenUsers authenticates "Bearer <key>" as users[key].
func tokenUsers(users map[string]models.User) func(context.Context, string) (models.User, error) {
	return func(_ context.Context, token string) (models.User, error) {
		user, ok := users[token]
		if !ok {
			return models.User{}, service.ErrTokenIsExpiredOrInvalid
		}
		return user, nil
	}
}

type fakeCatalogService struct {
	listFn   func(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	getFn    func(ctx context.Context, id string) (models.Product, error)
	createFn func(ctx context.Context, in models.ProductInput) (models.Product, error)
	updateFn func(ctx context.Context, id string, in models.ProductInput) (models.Product, error)
	deleteFn func(ctx context.Context, id string) error
	uploadFn func(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error)
}

func (f *fakeCatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeCatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return f.getFn(ctx, id)
}

func (f *fakeCatalogService) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	return f.createFn(ctx, in)
}

func (f *fakeCatalogService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	return f.updateFn(ctx, id, in)
}

func (f *fakeCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeCatalogService) RequestImageUpload(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error) {
	return f.uploadFn(ctx, req)
}

type fakeOrderService struct {
	placeFn        func(ctx context.Context, in models.OrderInput) (models.Order, error)
	listUserFn     func(ctx context.Context, userID string) ([]models.Order, error)
	listAllFn      func(ctx context.Context) ([]models.Order, error)
	updateStatusFn func(ctx context.Context, id string, status models.OrderStatus) error
}

func (f *fakeOrderService) PlaceOrder(ctx context.Context, in models.OrderInput) (models.Order, error) {
	return f.placeFn(ctx, in)
}

func (f *fakeOrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return f.listUserFn(ctx, userID)
}

func (f *fakeOrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return f.listAllFn(ctx)
}

func (f *fakeOrderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return f.updateStatusFn(ctx, id, status)
}

type fakeContactService struct {
	submitFn func(ctx context.Context, in models.ContactInput) (models.Contact, error)
	listFn   func(ctx context.Context) ([]models.Contact, error)
}

func (f *fakeContactService) SubmitContact(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	return f.submitFn(ctx, in)
}

func (f *fakeContactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return f.listFn(ctx)
}

type fakeHealthService struct {
	resp models.HealthResponse
}

func (f *fakeHealthService) Check(context.Context) models.HealthResponse {
	return f.resp
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	customer = models.User{ID: "u-ana", Name: "Ana", Email: "ana@x.com", Role: models.RoleCustomer}
	admin    = models.User{ID: "u-admin", Name: "Admin", Email: "admin@shop.com", Role: models.RoleAdmin}
)

func defaultSettings() Settings {
	return Settings{
		AdminPolicy:        config.AdminPolicyAuthenticated,
		OrderPolicy:        config.OrderPolicyOptional,
		IdempotencyHashKey: "hash-key",
	}
}

// newTestHandler builds a Handler around services. Missing auth service is
// replaced by one that knows the "ana" and "admin" tokens.
func newTestHandler(services *service.Services, settings Settings) *Handler {
	if services.AuthService == nil {
		services.AuthService = &fakeAuthService{
			authenticateFn: tokenUsers(map[string]models.User{"ana": customer, "admin": admin}),
		}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{version: "test-version"}
	}
	if services.HealthService == nil {
		services.HealthService = &fakeHealthService{resp: models.HealthResponse{OK: true, DB: models.DBConnected}}
	}

	return NewHandler(services, nil, settings, logger.Nop())
}

func doRequest(handler http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
