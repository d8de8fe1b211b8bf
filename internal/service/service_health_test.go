package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/mock"
	"github.com/MKhiriev/go-shop-keeper/models"
)

func TestHealthService_Check(t *testing.T) {
	checker := mock.NewMockHealthChecker(gomock.NewController(t))
	svc := NewHealthService(checker, logger.Nop())

	checker.EXPECT().Ping(gomock.Any()).Return(nil)
	assert.Equal(t, models.HealthResponse{OK: true, DB: models.DBConnected}, svc.Check(context.Background()))

	checker.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	assert.Equal(t, models.HealthResponse{OK: false, DB: models.DBDisconnected}, svc.Check(context.Background()))
}

func TestHealthService_Check_HasDeadline(t *testing.T) {
	checker := mock.NewMockHealthChecker(gomock.NewController(t))
	svc := NewHealthService(checker, logger.Nop())

	checker.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	})

	svc.Check(context.Background())
}
