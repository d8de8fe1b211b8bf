package http

import (
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/metrics"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
)

// Settings holds the transport-level knobs of the HTTP API.
type Settings struct {
	// AdminPolicy is config.AdminPolicyAuthenticated or config.AdminPolicyRole.
	AdminPolicy string
	// OrderPolicy is config.OrderPolicyOptional or config.OrderPolicyRequired.
	OrderPolicy string

	// RequestTimeout bounds every request. Zero disables the timeout.
	RequestTimeout time.Duration

	// IdempotencyTTL is how long completed order responses are replayed.
	IdempotencyTTL time.Duration
	// IdempotencyHashKey is the HMAC key for request fingerprints.
	IdempotencyHashKey string
}

// NewSettings extracts the HTTP settings from the application config.
func NewSettings(cfg *config.StructuredConfig) Settings {
	return Settings{
		AdminPolicy:        cfg.Auth.AdminPolicy,
		OrderPolicy:        cfg.Auth.OrderPolicy,
		RequestTimeout:     cfg.Server.RequestTimeout,
		IdempotencyTTL:     cfg.Storage.Redis.IdempotencyTTL,
		IdempotencyHashKey: idempotencyHashKey(cfg),
	}
}

// idempotencyFingerprintLabel derives the fingerprint key from the token
// secret when no dedicated key is configured.
const idempotencyFingerprintLabel = "go-shop-keeper/idempotency-fingerprint"

func idempotencyHashKey(cfg *config.StructuredConfig) string {
	if key := cfg.Storage.Redis.IdempotencyHashKey; key != "" {
		return key
	}
	return utils.HashString(idempotencyFingerprintLabel, cfg.Auth.TokenSignKey)
}

type Handler struct {
	services *service.Services

	// idempotency is nil when Redis is not configured.
	idempotency store.IdempotencyStore
	metrics     *metrics.HTTPMetrics
	settings    Settings

	logger *logger.Logger
}

func NewHandler(services *service.Services, idempotency store.IdempotencyStore, settings Settings, logger *logger.Logger) *Handler {
	logger.Info().
		Str("admin_policy", settings.AdminPolicy).
		Str("order_policy", settings.OrderPolicy).
		Bool("idempotency", idempotency != nil).
		Msg("http handler created")

	return &Handler{
		services:    services,
		idempotency: idempotency,
		metrics:     metrics.NewHTTPMetrics(),
		settings:    settings,
		logger:      logger,
	}
}
