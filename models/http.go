package models

// RegisterRequest is the body of POST /api/auth/register.
//
// Identifier is the unique contact identifier (an e-mail address). Email is
// accepted as an alias for clients that send the field under that name.
type RegisterRequest struct {
	Name       string   `json:"name"`
	Identifier string   `json:"identifier"`
	Email      string   `json:"email,omitempty"`
	TaxID      string   `json:"tax_id,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Password   string   `json:"password"`
	Type       UserType `json:"type,omitempty"`
}

// LoginIdentifier returns Identifier, falling back to Email.
func (r RegisterRequest) LoginIdentifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

// LoginRequest is the body of POST /api/auth/login and POST /api/admin/login.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password"`
}

// LoginIdentifier returns Identifier, falling back to Email.
func (r LoginRequest) LoginIdentifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// MessageResponse carries a short human-readable acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
