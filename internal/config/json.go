package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are written as strings ("30s", "168h").
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
		AdminPolicy   string   `json:"admin_policy"`
		OrderPolicy   string   `json:"order_policy"`
		AdminEmail    string   `json:"admin_email"`
		AdminPassword string   `json:"admin_password"`
	} `json:"auth,omitempty"`

	Storage struct {
		Driver string `json:"driver"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Mongo struct {
			URI      string `json:"uri"`
			Database string `json:"database"`
		} `json:"mongo,omitempty"`

		Redis struct {
			Address            string   `json:"address"`
			Password           string   `json:"password"`
			DB                 int      `json:"db"`
			IdempotencyTTL     Duration `json:"idempotency_ttl"`
			IdempotencyHashKey string   `json:"idempotency_hash_key"`
		} `json:"redis,omitempty"`

		Images struct {
			Endpoint      string   `json:"endpoint"`
			Region        string   `json:"region"`
			Bucket        string   `json:"bucket"`
			AccessKey     string   `json:"access_key"`
			SecretKey     string   `json:"secret_key"`
			PublicBaseURL string   `json:"public_base_url"`
			PresignTTL    Duration `json:"presign_ttl"`
		} `json:"images,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		PostmarkServerToken string `json:"postmark_server_token"`
		From                string `json:"from"`
		NotifyTo            string `json:"notify_to"`
	} `json:"mail,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  j.App.Version,
			LogLevel: j.App.LogLevel,
		},
		Auth: Auth{
			TokenSignKey:  j.Auth.TokenSignKey,
			TokenIssuer:   j.Auth.TokenIssuer,
			TokenDuration: time.Duration(j.Auth.TokenDuration),
			BcryptCost:    j.Auth.BcryptCost,
			AdminPolicy:   j.Auth.AdminPolicy,
			OrderPolicy:   j.Auth.OrderPolicy,
			AdminEmail:    j.Auth.AdminEmail,
			AdminPassword: j.Auth.AdminPassword,
		},
		Storage: Storage{
			Driver: j.Storage.Driver,
			DB:     DB{DSN: j.Storage.DB.DSN},
			Mongo: Mongo{
				URI:      j.Storage.Mongo.URI,
				Database: j.Storage.Mongo.Database,
			},
			Redis: Redis{
				Address:            j.Storage.Redis.Address,
				Password:           j.Storage.Redis.Password,
				DB:                 j.Storage.Redis.DB,
				IdempotencyTTL:     time.Duration(j.Storage.Redis.IdempotencyTTL),
				IdempotencyHashKey: j.Storage.Redis.IdempotencyHashKey,
			},
			Images: Images{
				Endpoint:      j.Storage.Images.Endpoint,
				Region:        j.Storage.Images.Region,
				Bucket:        j.Storage.Images.Bucket,
				AccessKey:     j.Storage.Images.AccessKey,
				SecretKey:     j.Storage.Images.SecretKey,
				PublicBaseURL: j.Storage.Images.PublicBaseURL,
				PresignTTL:    time.Duration(j.Storage.Images.PresignTTL),
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Mail: Mail{
			PostmarkServerToken: j.Mail.PostmarkServerToken,
			From:                j.Mail.From,
			NotifyTo:            j.Mail.NotifyTo,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
