package models

import "time"

// Product is a catalog entry. Products are written by admins only and read by
// anyone.
type Product struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Description    string    `json:"description" bson:"description"`
	WholesalePrice float64   `json:"wholesale_price" bson:"wholesale_price"`
	RetailPrice    float64   `json:"retail_price" bson:"retail_price"`
	Category       string    `json:"category" bson:"category"`
	Images         []string  `json:"images" bson:"images"`
	Stock          int       `json:"stock" bson:"stock"`
	Available      bool      `json:"available" bson:"available"`
	Featured       bool      `json:"featured" bson:"featured"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}

// ProductInput is the writable part of a product as sent by an admin.
// Available defaults to true when omitted.
type ProductInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	WholesalePrice float64  `json:"wholesale_price"`
	RetailPrice    float64  `json:"retail_price"`
	Category       string   `json:"category"`
	Images         []string `json:"images"`
	Stock          int      `json:"stock"`
	Available      *bool    `json:"available,omitempty"`
	Featured       bool     `json:"featured"`
}

// ToProduct converts the input into a product without ID and CreatedAt.
func (in ProductInput) ToProduct() Product {
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}

	return Product{
		Name:           in.Name,
		Description:    in.Description,
		WholesalePrice: in.WholesalePrice,
		RetailPrice:    in.RetailPrice,
		Category:       in.Category,
		Images:         images,
		Stock:          in.Stock,
		Available:      available,
		Featured:       in.Featured,
	}
}

// ProductFilter holds the equality filters supported by product listing.
// Nil fields are not applied.
type ProductFilter struct {
	Category  *string
	Featured  *bool
	Available *bool
}

// ImageUploadRequest asks for a presigned URL for a new product image.
type ImageUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// ImageUpload describes where the client should PUT an image and where it
// will be publicly reachable afterwards.
type ImageUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
