package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type CatalogValidationService struct {
	inner     CatalogService
	validator validators.Validator
}

func NewCatalogValidationService() CatalogServiceWrapper {
	return &CatalogValidationService{
		validator: validators.NewShopValidator(),
	}
}

func (v *CatalogValidationService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return v.inner.ListProducts(ctx, filter)
}

func (v *CatalogValidationService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return v.inner.GetProduct(ctx, id)
}

func (v *CatalogValidationService) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateProduct(ctx, in)
}

func (v *CatalogValidationService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProduct(ctx, id, in)
}

func (v *CatalogValidationService) DeleteProduct(ctx context.Context, id string) error {
	return v.inner.DeleteProduct(ctx, id)
}

func (v *CatalogValidationService) RequestImageUpload(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.ImageUpload{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RequestImageUpload(ctx, req)
}

func (v *CatalogValidationService) Wrap(wrapped CatalogService) CatalogService {
	v.inner = wrapped
	return v
}

type OrderValidationService struct {
	inner     OrderService
	validator validators.Validator
}

func NewOrderValidationService() OrderServiceWrapper {
	return &OrderValidationService{
		validator: validators.NewShopValidator(),
	}
}

func (v *OrderValidationService) PlaceOrder(ctx context.Context, in models.OrderInput) (models.Order, error) {
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.PlaceOrder(ctx, in)
}

func (v *OrderValidationService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return v.inner.ListUserOrders(ctx, userID)
}

func (v *OrderValidationService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return v.inner.ListAllOrders(ctx)
}

func (v *OrderValidationService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if err := v.validator.Validate(ctx, status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateOrderStatus(ctx, id, status)
}

func (v *OrderValidationService) Wrap(wrapped OrderService) OrderService {
	v.inner = wrapped
	return v
}

type ContactValidationService struct {
	inner     ContactService
	validator validators.Validator
}

func NewContactValidationService() ContactServiceWrapper {
	return &ContactValidationService{
		validator: validators.NewShopValidator(),
	}
}

func (v *ContactValidationService) SubmitContact(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.Contact{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SubmitContact(ctx, in)
}

func (v *ContactValidationService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return v.inner.ListContacts(ctx)
}

func (v *ContactValidationService) Wrap(wrapped ContactService) ContactService {
	v.inner = wrapped
	return v
}
