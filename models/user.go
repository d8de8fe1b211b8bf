package models

import (
	"strings"
	"time"
)

// UserType is the price tier a customer buys at.
type UserType string

const (
	// Wholesale customers see and pay wholesale prices. It is the default tier.
	Wholesale UserType = "wholesale"
	// Retail customers pay retail prices.
	Retail UserType = "retail"
)

// Role separates shop administrators from regular customers.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// PasswordHash must never be exposed outside the service boundary; the HTTP
// layer serializes [UserView] instead.
type User struct {
	// ID is the unique identifier of the user (UUIDv7 string).
	ID string `json:"id" bson:"_id"`

	// Name is the display name of the user.
	Name string `json:"name" bson:"name"`

	// Email is the unique contact identifier. It is always stored normalized
	// (see [NormalizeIdentifier]).
	Email string `json:"email" bson:"email"`

	// TaxID is an optional CPF/CNPJ document number. Informational only.
	TaxID string `json:"tax_id,omitempty" bson:"tax_id,omitempty"`

	// Phone is an optional contact phone number.
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`

	// Type is the price tier of the customer.
	Type UserType `json:"type" bson:"type"`

	// Role is either customer or admin.
	Role Role `json:"role" bson:"role"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-" bson:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// View returns the public representation of the user.
func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		TaxID:     u.TaxID,
		Phone:     u.Phone,
		Type:      u.Type,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserView is the only user shape that leaves the server. It deliberately has
// no password hash field.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	TaxID     string    `json:"tax_id,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Type      UserType  `json:"type"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeIdentifier canonicalizes a login identifier: surrounding
// whitespace is trimmed and the result is lower-cased. Registration and login
// must both go through it or duplicate detection silently fails.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
