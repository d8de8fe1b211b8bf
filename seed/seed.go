// Package seed holds the starter catalog and loads it into a running shop.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

//go:embed products.json
var productsJSON []byte

// Products returns the embedded starter catalog.
func Products() ([]models.ProductInput, error) {
	var products []models.ProductInput
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("error decoding embedded products: %w", err)
	}
	return products, nil
}

// Catalog is the part of the shop API the seeder needs.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
}

// Run creates every product whose name the catalog does not list yet, so
// running it twice creates nothing the second time. Names are compared
// case-insensitively. It returns how many products were created.
func Run(ctx context.Context, catalog Catalog, products []models.ProductInput, log *logger.Logger) (int, error) {
	existing, err := catalog.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing products: %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p.Name)] = struct{}{}
	}

	var created int
	for _, in := range products {
		key := strings.ToLower(in.Name)
		if _, ok := known[key]; ok {
			log.Debug().Str("name", in.Name).Msg("product already exists, skipping")
			continue
		}

		product, err := catalog.CreateProduct(ctx, in)
		if err != nil {
			return created, fmt.Errorf("error creating product %q: %w", in.Name, err)
		}
		known[key] = struct{}{}
		created++
		log.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")
	}

	return created, nil
}
