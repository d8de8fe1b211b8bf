// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Storage drivers accepted by Storage.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Admin access policies accepted by Auth.AdminPolicy.
const (
	// AdminPolicyAuthenticated lets any authenticated user through the admin
	// routes.
	AdminPolicyAuthenticated = "authenticated"
	// AdminPolicyRole requires the authenticated user to hold the admin role.
	AdminPolicyRole = "role"
)

// Order placement policies accepted by Auth.OrderPolicy.
const (
	// OrderPolicyOptional accepts anonymous orders. A valid bearer token still
	// binds the order to its owner.
	OrderPolicyOptional = "optional"
	// OrderPolicyRequired rejects orders without a valid bearer token.
	OrderPolicyRequired = "required"
)

// StructuredConfig is the top-level configuration container for the
// go-shop-keeper application. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version and log level.
	App App `envPrefix:"APP_"`

	// Auth holds token, password hashing and access policy settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for all persistence backends and the
	// optional Redis and object storage integrations.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds the contact notification settings.
	Mail Mail `envPrefix:"MAIL_"`

	// Adapter holds settings for the outbound API client used by cmd/seed.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds authentication and authorization settings.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Required.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token and
	// validated on every authenticated request.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "168h").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// AdminPolicy is one of AdminPolicyAuthenticated or AdminPolicyRole.
	// Env: AUTH_ADMIN_POLICY
	AdminPolicy string `env:"ADMIN_POLICY"`

	// OrderPolicy is one of OrderPolicyOptional or OrderPolicyRequired.
	// Env: AUTH_ORDER_POLICY
	OrderPolicy string `env:"ORDER_POLICY"`

	// AdminEmail and AdminPassword bootstrap an admin account at startup.
	// Both must be set together.
	// Env: AUTH_ADMIN_EMAIL, AUTH_ADMIN_PASSWORD
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// Driver selects the persistence backend: postgres, sqlite or mongo.
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Mongo holds the document database connection settings.
	Mongo Mongo `envPrefix:"MONGO_"`

	// Redis holds the idempotency store settings. Empty Address disables it.
	Redis Redis `envPrefix:"REDIS_"`

	// Images holds the S3-compatible object storage settings for product
	// images. Empty Bucket disables image uploads.
	Images Images `envPrefix:"IMAGES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string or the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Mongo holds connection settings for the document database backend.
type Mongo struct {
	// URI is the MongoDB connection string.
	// Env: STORAGE_MONGO_URI
	URI string `env:"URI"`

	// Database is the database name.
	// Env: STORAGE_MONGO_DATABASE
	Database string `env:"DATABASE"`
}

// Redis holds connection settings for the idempotency store.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
	// IdempotencyTTL is how long a completed response is replayed.
	// Env: STORAGE_REDIS_IDEMPOTENCY_TTL
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL"`
	// IdempotencyHashKey signs request fingerprints. Empty derives a key from
	// Auth.TokenSignKey, so the token secret itself never signs stored data.
	// Env: STORAGE_REDIS_IDEMPOTENCY_HASH_KEY
	IdempotencyHashKey string `env:"IDEMPOTENCY_HASH_KEY"`
}

// Images holds settings for presigned product image uploads.
type Images struct {
	// Endpoint overrides the S3 endpoint (MinIO, LocalStack). Empty uses AWS.
	// Env: STORAGE_IMAGES_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: STORAGE_IMAGES_REGION
	Region string `env:"REGION"`
	// Env: STORAGE_IMAGES_BUCKET
	Bucket string `env:"BUCKET"`
	// Env: STORAGE_IMAGES_ACCESS_KEY
	AccessKey string `env:"ACCESS_KEY"`
	// Env: STORAGE_IMAGES_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`
	// PublicBaseURL is prepended to object keys to build public image URLs.
	// Env: STORAGE_IMAGES_PUBLIC_BASE_URL
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	// PresignTTL is the validity of an upload URL.
	// Env: STORAGE_IMAGES_PRESIGN_TTL
	PresignTTL time.Duration `env:"PRESIGN_TTL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC health server listens.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Mail holds the Postmark settings for contact notifications. Empty
// PostmarkServerToken disables notifications.
type Mail struct {
	// Env: MAIL_POSTMARK_SERVER_TOKEN
	PostmarkServerToken string `env:"POSTMARK_SERVER_TOKEN"`
	// Env: MAIL_FROM
	From string `env:"FROM"`
	// Env: MAIL_NOTIFY_TO
	NotifyTo string `env:"NOTIFY_TO"`
}

// Adapter holds settings for the outbound HTTP client.
type Adapter struct {
	// HTTPAddress is the base URL of the shop API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration using the process command line.
func GetStructuredConfig() (*StructuredConfig, error) {
	return LoadStructuredConfig(os.Args[1:])
}

// LoadStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources win for non-zero fields):
//  1. .env file (only fills variables missing from the environment)
//  2. Environment variables
//  3. Command-line flags from args
//  4. JSON file (path resolved from sources 1-3)
//
// Zero fields left after merging are filled from built-in defaults.
func LoadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// defaultSQLiteDSN is used when the sqlite driver is selected without a DSN.
const defaultSQLiteDSN = "shop.db"

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:  "dev",
			LogLevel: "info",
		},
		Auth: Auth{
			TokenIssuer:   "go-shop-keeper",
			TokenDuration: 7 * 24 * time.Hour,
			BcryptCost:    10,
			AdminPolicy:   AdminPolicyAuthenticated,
			OrderPolicy:   OrderPolicyOptional,
		},
		Storage: Storage{
			Driver: DriverSQLite,
			Mongo:  Mongo{Database: "shop"},
			Redis:  Redis{IdempotencyTTL: 24 * time.Hour},
			Images: Images{
				Region:     "us-east-1",
				PresignTTL: 15 * time.Minute,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
	}
}
