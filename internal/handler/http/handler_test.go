package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
)

func TestNewSettings(t *testing.T) {
	cfg := &config.StructuredConfig{
		Auth: config.Auth{
			TokenSignKey: "jwt-secret",
			AdminPolicy:  config.AdminPolicyRole,
			OrderPolicy:  config.OrderPolicyRequired,
		},
		Server: config.Server{RequestTimeout: 30 * time.Second},
		Storage: config.Storage{
			Redis: config.Redis{IdempotencyTTL: time.Hour},
		},
	}

	s := NewSettings(cfg)

	assert.Equal(t, config.AdminPolicyRole, s.AdminPolicy)
	assert.Equal(t, config.OrderPolicyRequired, s.OrderPolicy)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
	assert.Equal(t, time.Hour, s.IdempotencyTTL)
}

func TestNewSettings_IdempotencyHashKey(t *testing.T) {
	t.Run("derived key differs from the token secret", func(t *testing.T) {
		cfg := &config.StructuredConfig{Auth: config.Auth{TokenSignKey: "jwt-secret"}}

		key := NewSettings(cfg).IdempotencyHashKey

		assert.NotEmpty(t, key)
		assert.NotEqual(t, "jwt-secret", key)
		assert.Equal(t, key, NewSettings(cfg).IdempotencyHashKey, "derivation must be stable across restarts")
	})

	t.Run("different secrets derive different keys", func(t *testing.T) {
		a := NewSettings(&config.StructuredConfig{Auth: config.Auth{TokenSignKey: "secret-a"}})
		b := NewSettings(&config.StructuredConfig{Auth: config.Auth{TokenSignKey: "secret-b"}})

		assert.NotEqual(t, a.IdempotencyHashKey, b.IdempotencyHashKey)
	})

	t.Run("configured key wins", func(t *testing.T) {
		cfg := &config.StructuredConfig{
			Auth:    config.Auth{TokenSignKey: "jwt-secret"},
			Storage: config.Storage{Redis: config.Redis{IdempotencyHashKey: "fingerprint-key"}},
		}

		assert.Equal(t, "fingerprint-key", NewSettings(cfg).IdempotencyHashKey)
	})
}
