package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/models"
)

var vase = models.Product{ID: "p-1", Name: "Vase", WholesalePrice: 10, RetailPrice: 15, Category: "decor", Images: []string{}, Available: true}

func TestListProducts_Filters(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		check      func(t *testing.T, f models.ProductFilter)
	}{
		{
			name:       "no filters",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f models.ProductFilter) {
				assert.Nil(t, f.Category)
				assert.Nil(t, f.Featured)
				assert.Nil(t, f.Available)
			},
		},
		{
			name:       "all filters",
			query:      "?category=decor&featured=true&available=false",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f models.ProductFilter) {
				require.NotNil(t, f.Category)
				assert.Equal(t, "decor", *f.Category)
				require.NotNil(t, f.Featured)
				assert.True(t, *f.Featured)
				require.NotNil(t, f.Available)
				assert.False(t, *f.Available)
			},
		},
		{
			name:       "bad boolean",
			query:      "?featured=maybe",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *models.ProductFilter
			h := newTestHandler(&service.Services{
				CatalogService: &fakeCatalogService{
					listFn: func(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
						got = &f
						return []models.Product{vase}, nil
					},
				},
			}, defaultSettings())

			rec := doRequest(h.Init(), http.MethodGet, "/api/products"+tt.query, "", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				require.NotNil(t, got)
				tt.check(t, *got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	h := newTestHandler(&service.Services{
		CatalogService: &fakeCatalogService{
			listFn: func(context.Context, models.ProductFilter) ([]models.Product, error) {
				return []models.Product{}, nil
			},
		},
	}, defaultSettings())

	rec := doRequest(h.Init(), http.MethodGet, "/api/products", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	h := newTestHandler(&service.Services{
		CatalogService: &fakeCatalogService{
			getFn: func(_ context.Context, id string) (models.Product, error) {
				if id == vase.ID {
					return vase, nil
				}
				return models.Product{}, store.ErrProductNotFound
			},
		},
	}, defaultSettings())
	router := h.Init()

	rec := doRequest(router, http.MethodGet, "/api/products/p-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, vase, got)

	rec = doRequest(router, http.MethodGet, "/api/products/p-404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func adminCatalog() *fakeCatalogService {
	return &fakeCatalogService{
		createFn: func(_ context.Context, in models.ProductInput) (models.Product, error) {
			p := in.ToProduct()
			p.ID = "p-new"
			return p, nil
		},
		updateFn: func(_ context.Context, id string, in models.ProductInput) (models.Product, error) {
			if id != vase.ID {
				return models.Product{}, store.ErrProductNotFound
			}
			p := in.ToProduct()
			p.ID = id
			return p, nil
		},
		deleteFn: func(_ context.Context, id string) error {
			if id != vase.ID {
				return store.ErrProductNotFound
			}
			return nil
		},
		uploadFn: func(context.Context, models.ImageUploadRequest) (models.ImageUpload, error) {
			return models.ImageUpload{}, service.ErrImageStorageDisabled
		},
	}
}

func TestAdminProducts(t *testing.T) {
	settings := defaultSettings()
	settings.AdminPolicy = config.AdminPolicyRole
	router := newTestHandler(&service.Services{CatalogService: adminCatalog()}, settings).Init()

	product := `{"name":"Vase","wholesale_price":10,"retail_price":15,"category":"decor"}`

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{"create", http.MethodPost, "/api/admin/products", product, "admin", http.StatusCreated, `"id":"p-new"`},
		{"create anonymously", http.MethodPost, "/api/admin/products", product, "", http.StatusUnauthorized, ""},
		{"create as customer", http.MethodPost, "/api/admin/products", product, "ana", http.StatusForbidden, ""},
		{"update", http.MethodPut, "/api/admin/products/p-1", product, "admin", http.StatusOK, `"id":"p-1"`},
		{"update missing", http.MethodPut, "/api/admin/products/p-404", product, "admin", http.StatusNotFound, ""},
		{"delete", http.MethodDelete, "/api/admin/products/p-1", "", "admin", http.StatusOK, `"product deleted"`},
		{"delete missing", http.MethodDelete, "/api/admin/products/p-404", "", "admin", http.StatusNotFound, ""},
		{"image upload without storage", http.MethodPost, "/api/admin/products/images", `{"filename":"a.png","content_type":"image/png"}`, "admin", http.StatusNotImplemented, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, tt.method, tt.path, tt.body, tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
