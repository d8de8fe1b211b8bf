package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
)

// Storages bundles the repositories of the active backend together with the
// optional idempotency store.
type Storages struct {
	UserRepository    UserRepository
	ProductRepository ProductRepository
	OrderRepository   OrderRepository
	ContactRepository ContactRepository
	HealthChecker     HealthChecker

	// IdempotencyStore is nil when Redis is not configured.
	IdempotencyStore IdempotencyStore

	closers []func(context.Context) error
}

// NewStorages connects the backend selected by cfg.Driver and, when
// configured, Redis.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		storages *Storages
		err      error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		storages, err = newSQLStorages(NewConnectPostgres(ctx, cfg.DB, log))
	case config.DriverSQLite:
		storages, err = newSQLStorages(NewConnectSQLite(ctx, cfg.DB, log))
	case config.DriverMongo:
		storages, err = newMongoStorages(ctx, cfg.Mongo, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Address != "" {
		client, err := NewConnectRedis(ctx, cfg.Redis, log)
		if err != nil {
			_ = storages.Close(ctx)
			return nil, err
		}
		storages.IdempotencyStore = NewRedisIdempotencyStore(client, log)
		storages.closers = append(storages.closers, func(context.Context) error { return client.Close() })
	}

	log.Info().Str("driver", cfg.Driver).Bool("idempotency", storages.IdempotencyStore != nil).Msg("storages are ready")
	return storages, nil
}

// NewSQLStorages wires the relational repositories around db.
func NewSQLStorages(db *DB) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, db.logger),
		ProductRepository: NewProductRepository(db, db.logger),
		OrderRepository:   NewOrderRepository(db, db.logger),
		ContactRepository: NewContactRepository(db, db.logger),
		HealthChecker:     db,
		closers:           []func(context.Context) error{func(context.Context) error { return db.Close() }},
	}
}

func newSQLStorages(db *DB, err error) (*Storages, error) {
	if err != nil {
		return nil, err
	}
	return NewSQLStorages(db), nil
}

func newMongoStorages(ctx context.Context, cfg config.Mongo, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectMongo(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:    NewMongoUserRepository(db, log),
		ProductRepository: NewMongoProductRepository(db, log),
		OrderRepository:   NewMongoOrderRepository(db, log),
		ContactRepository: NewMongoContactRepository(db, log),
		HealthChecker:     db,
		closers:           []func(context.Context) error{db.Close},
	}, nil
}

// Close releases every connection in reverse order of opening.
func (s *Storages) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
