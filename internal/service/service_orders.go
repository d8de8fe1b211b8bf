package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type orderService struct {
	orderRepository store.OrderRepository

	generateID func() string
	now        func() time.Time

	logger *logger.Logger
}

func NewOrderService(orderRepository store.OrderRepository, logger *logger.Logger) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		generateID:      utils.NewUUIDGenerator().Generate,
		now:             time.Now,
		logger:          logger,
	}
}

// PlaceOrder stores a new pending order. When ctx carries an authenticated
// user, the order belongs to that user whatever user_id the body claims.
// Stock is not touched and the total is stored as sent.
func (s *orderService) PlaceOrder(ctx context.Context, in models.OrderInput) (models.Order, error) {
	order := in.ToOrder()
	order.ID = s.generateID()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now().UTC()
	}

	if user, ok := utils.UserFromContext(ctx); ok {
		order.UserID = user.ID
		order.UserName = user.Name
	}

	created, err := s.orderRepository.CreateOrder(ctx, order)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*orderService.PlaceOrder").Msg("error creating order")
		return models.Order{}, fmt.Errorf("error creating order: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("order_id", created.ID).
		Str("user_id", created.UserID).
		Float64("total", created.Total).
		Msg("order placed")

	return created, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepository.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepository.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus sets any valid status. Transitions are not checked.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if err := s.orderRepository.UpdateOrderStatus(ctx, id, status); err != nil {
		return fmt.Errorf("error updating order status: %w", err)
	}

	return nil
}
