package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type httpShopAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPShopAdapter constructs the resty implementation of [ShopAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPShopAdapter(cfg config.Adapter, logger *logger.Logger) (ShopAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpShopAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpShopAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpShopAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpShopAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.login(ctx, "/api/auth/login", req)
}

func (h *httpShopAdapter) AdminLogin(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return h.login(ctx, "/api/admin/login", req)
}

func (h *httpShopAdapter) login(ctx context.Context, path string, req models.LoginRequest) (models.AuthResponse, error) {
	var authResp models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&authResp).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}
	if authResp.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("login response carries no token")
	}

	h.SetToken(authResp.Token)
	h.logger.Debug().Str("user_id", authResp.User.ID).Str("path", path).Msg("signed in")
	return authResp, nil
}

func (h *httpShopAdapter) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	resp, err := h.authedRequest(ctx).
		SetResult(&products).
		Get("/api/products")
	if err != nil {
		return nil, fmt.Errorf("list products request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return products, nil
}

func (h *httpShopAdapter) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var product models.Product

	resp, err := h.authedRequest(ctx).
		SetBody(in).
		SetResult(&product).
		Post("/api/admin/products")
	if err != nil {
		return models.Product{}, fmt.Errorf("create product request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

func (h *httpShopAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		SetError(&health).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if resp.StatusCode() == http.StatusServiceUnavailable {
		return health, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

func (h *httpShopAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
