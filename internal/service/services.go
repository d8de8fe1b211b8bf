package service

import (
	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/crypto"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/notify"
	"github.com/MKhiriev/go-shop-keeper/internal/objectstore"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
)

type Services struct {
	AuthService    AuthService
	CatalogService CatalogService
	OrderService   OrderService
	ContactService ContactService
	HealthService  HealthService
	AppInfoService AppInfoService
}

// NewServices wires every service to the given storages. presigner may be
// nil when image storage is not configured.
func NewServices(storages *store.Storages, presigner objectstore.Presigner, notifier notify.Notifier, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, hasher, cfg.Auth, logger),
		CatalogService: NewCatalogValidationService().Wrap(NewCatalogService(storages.ProductRepository, presigner, logger)),
		OrderService:   NewOrderValidationService().Wrap(NewOrderService(storages.OrderRepository, logger)),
		ContactService: NewContactValidationService().Wrap(NewContactService(storages.ContactRepository, notifier, logger)),
		HealthService:  NewHealthService(storages.HealthChecker, logger),
		AppInfoService: appInfoService,
	}, nil
}
