package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shop-keeper/models"
)

var (
	userColumns = []string{"id", "name", "email", "tax_id", "phone", "type", "role", "password_hash", "created_at"}

	productColumns = []string{"id", "name", "description", "wholesale_price", "retail_price", "category", "images", "stock", "available", "featured", "created_at"}

	orderColumns = []string{"id", "user_id", "user_name", "total", "status", "payment_method", "channel", "created_at"}

	orderItemColumns = []string{"order_id", "position", "product_id", "sku", "name", "quantity", "unit_price"}

	contactColumns = []string{"id", "name", "email", "phone", "message", "created_at"}
)

const (
	usersTable      = "users"
	productsTable   = "products"
	ordersTable     = "orders"
	orderItemsTable = "order_items"
	contactsTable   = "contacts"

	newestFirst = "created_at DESC"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.TaxID, &u.Phone, &u.Type, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func userValues(u models.User) []any {
	return []any{u.ID, u.Name, u.Email, u.TaxID, u.Phone, u.Type, u.Role, u.PasswordHash, u.CreatedAt.UTC()}
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p      models.Product
		images string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.WholesalePrice, &p.RetailPrice, &p.Category, &images, &p.Stock, &p.Available, &p.Featured, &p.CreatedAt)
	if err != nil {
		return models.Product{}, err
	}

	p.Images, err = decodeImages(images)
	return p, err
}

func productValues(p models.Product) ([]any, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}

	return []any{p.ID, p.Name, p.Description, p.WholesalePrice, p.RetailPrice, p.Category, images, p.Stock, p.Available, p.Featured, p.CreatedAt.UTC()}, nil
}

// productSetMap lists the columns an update may change.
func productSetMap(p models.Product) (map[string]any, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"name":            p.Name,
		"description":     p.Description,
		"wholesale_price": p.WholesalePrice,
		"retail_price":    p.RetailPrice,
		"category":        p.Category,
		"images":          images,
		"stock":           p.Stock,
		"available":       p.Available,
		"featured":        p.Featured,
	}, nil
}

// productFilterWhere turns the non-nil filter fields into equality
// predicates.
func productFilterWhere(filter models.ProductFilter) sq.Eq {
	where := sq.Eq{}
	if filter.Category != nil {
		where["category"] = *filter.Category
	}
	if filter.Featured != nil {
		where["featured"] = *filter.Featured
	}
	if filter.Available != nil {
		where["available"] = *filter.Available
	}
	return where
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}

	raw, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("error encoding product images: %w", err)
	}
	return string(raw), nil
}

func decodeImages(raw string) ([]string, error) {
	images := []string{}
	if raw == "" {
		return images, nil
	}

	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, fmt.Errorf("error decoding product images: %w", err)
	}
	return images, nil
}

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o      models.Order
		userID sql.NullString
	)
	err := row.Scan(&o.ID, &userID, &o.UserName, &o.Total, &o.Status, &o.PaymentMethod, &o.Channel, &o.CreatedAt)
	if err != nil {
		return models.Order{}, err
	}

	o.UserID = userID.String
	o.Items = []models.OrderItem{}
	return o, nil
}

func orderValues(o models.Order) []any {
	userID := sql.NullString{String: o.UserID, Valid: o.UserID != ""}
	return []any{o.ID, userID, o.UserName, o.Total, o.Status, o.PaymentMethod, o.Channel, o.CreatedAt.UTC()}
}

// insertOrderItems builds a single multi-row insert for all items of an
// order, keeping their original order in the position column.
func insertOrderItems(builder sq.StatementBuilderType, orderID string, items []models.OrderItem) sq.InsertBuilder {
	insert := builder.Insert(orderItemsTable).Columns(orderItemColumns...)
	for i, item := range items {
		insert = insert.Values(orderID, i, item.ProductID, item.SKU, item.Name, item.Quantity, item.UnitPrice)
	}
	return insert
}

func scanContact(row rowScanner) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &c.CreatedAt)
	return c, err
}

func contactValues(c models.Contact) []any {
	return []any{c.ID, c.Name, c.Email, c.Phone, c.Message, c.CreatedAt.UTC()}
}
