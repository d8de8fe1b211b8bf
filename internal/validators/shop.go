package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldUserType      = "type"
	FieldCategory      = "category"
	FieldPrices        = "prices"
	FieldStock         = "stock"
	FieldFilename      = "filename"
	FieldContentType   = "content_type"
	FieldItems         = "items"
	FieldTotal         = "total"
	FieldPaymentMethod = "payment_method"
	FieldStatus        = "status"
	FieldMessage       = "message"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// ShopValidator implements [Validator] for the request models of the shop:
// registrations, product inputs, image upload requests, orders, order
// statuses and contact messages.
type ShopValidator struct{}

// NewShopValidator constructs a new ShopValidator and returns it as the
// Validator interface.
func NewShopValidator() Validator {
	return &ShopValidator{}
}

// Validate dispatches validation to the type-specific method. Both values and
// pointers are accepted.
func (v *ShopValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.ProductInput:
		return v.validateProductInput(value, fields...)
	case *models.ProductInput:
		return v.validateProductInput(*value, fields...)

	case models.ImageUploadRequest:
		return v.validateImageUploadRequest(value, fields...)
	case *models.ImageUploadRequest:
		return v.validateImageUploadRequest(*value, fields...)

	case models.OrderInput:
		return v.validateOrderInput(value, fields...)
	case *models.OrderInput:
		return v.validateOrderInput(*value, fields...)

	case models.OrderStatus:
		if !value.Valid() {
			return ErrInvalidOrderStatus
		}
		return nil

	case models.ContactInput:
		return v.validateContactInput(value, fields...)
	case *models.ContactInput:
		return v.validateContactInput(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	// reject display-name forms like "Ana <ana@x.com>"
	return err == nil && addr.Address == s
}

func (v *ShopValidator) validateRegisterRequest(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldUserType}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if !isEmail(models.NormalizeIdentifier(req.LoginIdentifier())) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(req.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldUserType:
			switch req.Type {
			case "", models.Wholesale, models.Retail:
			default:
				return ErrInvalidUserType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateProductInput(in models.ProductInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCategory, FieldPrices, FieldStock}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(in.Name) == "" {
				return ErrEmptyName
			}
		case FieldCategory:
			if strings.TrimSpace(in.Category) == "" {
				return ErrEmptyCategory
			}
		case FieldPrices:
			if in.WholesalePrice < 0 || in.RetailPrice < 0 {
				return ErrNegativePrice
			}
		case FieldStock:
			if in.Stock < 0 {
				return ErrNegativeStock
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateImageUploadRequest(req models.ImageUploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFilename, FieldContentType}
	}

	for _, f := range fields {
		switch f {
		case FieldFilename:
			if strings.TrimSpace(req.Filename) == "" {
				return ErrEmptyFilename
			}
		case FieldContentType:
			if !strings.HasPrefix(req.ContentType, "image/") {
				return ErrInvalidImageMIME
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ShopValidator) validateOrderInput(in models.OrderInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItems, FieldTotal, FieldPaymentMethod}
	}

	for _, f := range fields {
		switch f {
		case FieldItems:
			if len(in.Items) == 0 {
				return ErrNoItems
			}
			for i, item := range in.Items {
				if err := validateOrderItem(item); err != nil {
					return fmt.Errorf("validation error at item %d: %w", i, err)
				}
			}
		case FieldTotal:
			if in.Total < 0 {
				return ErrNegativeTotal
			}
		case FieldPaymentMethod:
			if !in.PaymentMethod.Valid() {
				return ErrInvalidPaymentMethod
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateOrderItem(item models.OrderItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return ErrEmptyProductID
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.UnitPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

func (v *ShopValidator) validateContactInput(in models.ContactInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldMessage}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(in.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if !isEmail(strings.TrimSpace(in.Email)) {
				return ErrInvalidEmail
			}
		case FieldMessage:
			if strings.TrimSpace(in.Message) == "" {
				return ErrEmptyMessage
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
