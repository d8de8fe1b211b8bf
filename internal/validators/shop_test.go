// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Name:       "Ana",
		Identifier: "ana@x.com",
		Password:   "secret1",
	}
}

func validProductInput() models.ProductInput {
	return models.ProductInput{
		Name:           "Vestido",
		Category:       "vestidos",
		WholesalePrice: 50,
		RetailPrice:    80,
		Stock:          3,
	}
}

func validOrderInput() models.OrderInput {
	return models.OrderInput{
		Items:         []models.OrderItem{{ProductID: "p1", Name: "Vestido", Quantity: 2, UnitPrice: 50}},
		Total:         100,
		PaymentMethod: models.PaymentPix,
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewShopValidator(t *testing.T) {
	require.NotNil(t, NewShopValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewShopValidator()
	ctx := context.Background()

	req := validRegisterRequest()
	product := validProductInput()
	order := validOrderInput()

	assert.NoError(t, v.Validate(ctx, req))
	assert.NoError(t, v.Validate(ctx, &req))
	assert.NoError(t, v.Validate(ctx, product))
	assert.NoError(t, v.Validate(ctx, &product))
	assert.NoError(t, v.Validate(ctx, order))
	assert.NoError(t, v.Validate(ctx, &order))
	assert.NoError(t, v.Validate(ctx, models.OrderShipped))
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, req, "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Registration
// ---------------------------------------------------------------------------

func TestValidate_RegisterRequest(t *testing.T) {
	v := NewShopValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{"valid", func(r *models.RegisterRequest) {}, nil},
		{"email alias", func(r *models.RegisterRequest) { r.Identifier = ""; r.Email = "ana@x.com" }, nil},
		{"padded mixed-case email", func(r *models.RegisterRequest) { r.Identifier = "  Ana@X.com " }, nil},
		{"empty name", func(r *models.RegisterRequest) { r.Name = "  " }, ErrEmptyName},
		{"no identifier", func(r *models.RegisterRequest) { r.Identifier = "" }, ErrInvalidEmail},
		{"not an email", func(r *models.RegisterRequest) { r.Identifier = "ana" }, ErrInvalidEmail},
		{"display name form", func(r *models.RegisterRequest) { r.Identifier = "Ana <ana@x.com>" }, ErrInvalidEmail},
		{"short password", func(r *models.RegisterRequest) { r.Password = "12345" }, ErrPasswordTooShort},
		{"retail type", func(r *models.RegisterRequest) { r.Type = models.Retail }, nil},
		{"unknown type", func(r *models.RegisterRequest) { r.Type = "vip" }, ErrInvalidUserType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_RegisterRequest_FieldScope(t *testing.T) {
	v := NewShopValidator()
	req := models.RegisterRequest{Password: "123"}

	assert.NoError(t, v.Validate(context.Background(), req, FieldUserType))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldPassword), ErrPasswordTooShort)
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func TestValidate_ProductInput(t *testing.T) {
	v := NewShopValidator()

	tests := []struct {
		name    string
		mutate  func(p *models.ProductInput)
		wantErr error
	}{
		{"valid", func(p *models.ProductInput) {}, nil},
		{"zero prices", func(p *models.ProductInput) { p.WholesalePrice, p.RetailPrice = 0, 0 }, nil},
		{"empty name", func(p *models.ProductInput) { p.Name = "" }, ErrEmptyName},
		{"empty category", func(p *models.ProductInput) { p.Category = " " }, ErrEmptyCategory},
		{"negative wholesale", func(p *models.ProductInput) { p.WholesalePrice = -1 }, ErrNegativePrice},
		{"negative retail", func(p *models.ProductInput) { p.RetailPrice = -0.01 }, ErrNegativePrice},
		{"negative stock", func(p *models.ProductInput) { p.Stock = -1 }, ErrNegativeStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProductInput()
			tt.mutate(&in)

			err := v.Validate(context.Background(), in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ImageUploadRequest(t *testing.T) {
	v := NewShopValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ImageUploadRequest{Filename: "v.jpg", ContentType: "image/jpeg"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ImageUploadRequest{ContentType: "image/png"}), ErrEmptyFilename)
	assert.ErrorIs(t, v.Validate(ctx, &models.ImageUploadRequest{Filename: "x.pdf", ContentType: "application/pdf"}), ErrInvalidImageMIME)
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

func TestValidate_OrderInput(t *testing.T) {
	v := NewShopValidator()

	tests := []struct {
		name    string
		mutate  func(o *models.OrderInput)
		wantErr error
	}{
		{"valid", func(o *models.OrderInput) {}, nil},
		{"total not checked against items", func(o *models.OrderInput) { o.Total = 1 }, nil},
		{"no items", func(o *models.OrderInput) { o.Items = nil }, ErrNoItems},
		{"zero quantity", func(o *models.OrderInput) { o.Items[0].Quantity = 0 }, ErrInvalidQuantity},
		{"negative unit price", func(o *models.OrderInput) { o.Items[0].UnitPrice = -5 }, ErrNegativePrice},
		{"missing product id", func(o *models.OrderInput) { o.Items[0].ProductID = "" }, ErrEmptyProductID},
		{"negative total", func(o *models.OrderInput) { o.Total = -1 }, ErrNegativeTotal},
		{"unknown payment", func(o *models.OrderInput) { o.PaymentMethod = "bitcoin" }, ErrInvalidPaymentMethod},
		{"empty payment", func(o *models.OrderInput) { o.PaymentMethod = "" }, ErrInvalidPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOrderInput()
			tt.mutate(&in)

			err := v.Validate(context.Background(), in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_OrderStatus(t *testing.T) {
	v := NewShopValidator()

	for _, s := range []models.OrderStatus{models.OrderPending, models.OrderConfirmed, models.OrderShipped, models.OrderDelivered} {
		assert.NoError(t, v.Validate(context.Background(), s), s)
	}
	assert.ErrorIs(t, v.Validate(context.Background(), models.OrderStatus("lost")), ErrInvalidOrderStatus)
	assert.ErrorIs(t, v.Validate(context.Background(), models.OrderStatus("")), ErrInvalidOrderStatus)
}

// ---------------------------------------------------------------------------
// Contacts
// ---------------------------------------------------------------------------

func TestValidate_ContactInput(t *testing.T) {
	v := NewShopValidator()
	ctx := context.Background()

	valid := models.ContactInput{Name: "Ana", Email: "ana@x.com", Message: "Oi"}
	assert.NoError(t, v.Validate(ctx, valid))

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, v.Validate(ctx, noName), ErrEmptyName)

	badEmail := valid
	badEmail.Email = "ana"
	assert.ErrorIs(t, v.Validate(ctx, badEmail), ErrInvalidEmail)

	noMessage := valid
	noMessage.Message = "   "
	assert.ErrorIs(t, v.Validate(ctx, &noMessage), ErrEmptyMessage)
}
