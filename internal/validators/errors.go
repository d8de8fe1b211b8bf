package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName        = errors.New("name is required")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrInvalidUserType  = errors.New("invalid user type")

	ErrEmptyCategory    = errors.New("category is required")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNegativeStock    = errors.New("stock cannot be negative")
	ErrEmptyFilename    = errors.New("filename is required")
	ErrInvalidImageMIME = errors.New("content type must be an image")

	ErrNoItems              = errors.New("order must have at least one item")
	ErrInvalidQuantity      = errors.New("item quantity must be positive")
	ErrEmptyProductID       = errors.New("item product id is required")
	ErrNegativeTotal        = errors.New("total cannot be negative")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidOrderStatus   = errors.New("invalid order status")

	ErrEmptyMessage = errors.New("message is required")
)
