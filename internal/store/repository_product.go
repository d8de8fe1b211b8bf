package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type productRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProductRepository constructs a relational [ProductRepository].
func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(productColumns...).
		From(productsTable).
		Where(productFilterWhere(filter)).
		OrderBy(newestFirst).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error querying products")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error scanning product")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("error iterating products")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.GetProduct").Msg("error building query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		log.Err(err).Str("func", "*productRepository.GetProduct").Msg("error scanning product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	values, err := productValues(product)
	if err != nil {
		return models.Product{}, err
	}

	query, args, err := r.db.builder.Insert(productsTable).
		Columns(productColumns...).
		Values(values...).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("error building query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("error inserting product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if product.Images == nil {
		product.Images = []string{}
	}
	return product, nil
}

// UpdateProduct overwrites the writable columns and reads the row back so the
// caller gets the stored CreatedAt.
func (r *productRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	set, err := productSetMap(product)
	if err != nil {
		return models.Product{}, err
	}

	query, args, err := r.db.builder.Update(productsTable).
		SetMap(set).
		Where(sq.Eq{"id": product.ID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("error building query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("error updating product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	return r.GetProduct(ctx, product.ID)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(productsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*productRepository.DeleteProduct").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.DeleteProduct").Msg("error deleting product")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
