package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/objectstore"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/utils"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type catalogService struct {
	productRepository store.ProductRepository

	// presigner is nil when image storage is not configured.
	presigner objectstore.Presigner

	generateID func() string
	now        func() time.Time

	logger *logger.Logger
}

// NewCatalogService constructs the CatalogService. presigner may be nil, in
// which case RequestImageUpload reports ErrImageStorageDisabled.
func NewCatalogService(productRepository store.ProductRepository, presigner objectstore.Presigner, logger *logger.Logger) CatalogService {
	return &catalogService{
		productRepository: productRepository,
		presigner:         presigner,
		generateID:        utils.NewUUIDGenerator().Generate,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.productRepository.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	product, err := s.productRepository.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, fmt.Errorf("error getting product: %w", err)
	}

	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	product := in.ToProduct()
	product.ID = s.generateID()
	product.CreatedAt = s.now().UTC()

	created, err := s.productRepository.CreateProduct(ctx, product)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogService.CreateProduct").Msg("error creating product")
		return models.Product{}, fmt.Errorf("error creating product: %w", err)
	}

	return created, nil
}

// UpdateProduct replaces the writable fields of product id. ID and
// CreatedAt are kept.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	product := in.ToProduct()
	product.ID = id

	updated, err := s.productRepository.UpdateProduct(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("error updating product: %w", err)
	}

	return updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepository.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}

	return nil
}

func (s *catalogService) RequestImageUpload(ctx context.Context, req models.ImageUploadRequest) (models.ImageUpload, error) {
	if s.presigner == nil {
		return models.ImageUpload{}, ErrImageStorageDisabled
	}

	upload, err := s.presigner.PresignImageUpload(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*catalogService.RequestImageUpload").Msg("error presigning image upload")
		return models.ImageUpload{}, fmt.Errorf("error presigning image upload: %w", err)
	}

	return upload, nil
}
