package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/models"
)

const healthCheckTimeout = 2 * time.Second

type healthService struct {
	checker store.HealthChecker
	logger  *logger.Logger
}

func NewHealthService(checker store.HealthChecker, logger *logger.Logger) HealthService {
	return &healthService{checker: checker, logger: logger}
}

func (s *healthService) Check(ctx context.Context) models.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.checker.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthService.Check").Msg("database ping failed")
		return models.HealthResponse{OK: false, DB: models.DBDisconnected}
	}

	return models.HealthResponse{OK: true, DB: models.DBConnected}
}
