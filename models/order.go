package models

import (
	"slices"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

var orderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	return slices.Contains(orderStatuses, s)
}

// PaymentMethod tags how the customer intends to pay. No settlement happens
// on the server.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentCard     PaymentMethod = "card"
	PaymentBoleto   PaymentMethod = "boleto"
	PaymentWhatsApp PaymentMethod = "whatsapp"
)

var paymentMethods = []PaymentMethod{PaymentPix, PaymentCard, PaymentBoleto, PaymentWhatsApp}

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	return slices.Contains(paymentMethods, m)
}

// DefaultOrderChannel is used when the client does not say where the order
// came from. Most orders are closed over WhatsApp.
const DefaultOrderChannel = "whatsapp"

// OrderItem is a line of an order. Name and UnitPrice are snapshots taken at
// the time the order was placed.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	SKU       string  `json:"sku,omitempty" bson:"sku,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
}

// Order is a placed order. Total is taken from the client as is.
type Order struct {
	ID            string        `json:"id" bson:"_id"`
	UserID        string        `json:"user_id,omitempty" bson:"user_id,omitempty"`
	UserName      string        `json:"user_name,omitempty" bson:"user_name,omitempty"`
	Items         []OrderItem   `json:"items" bson:"items"`
	Total         float64       `json:"total" bson:"total"`
	Status        OrderStatus   `json:"status" bson:"status"`
	PaymentMethod PaymentMethod `json:"payment_method" bson:"payment_method"`
	Channel       string        `json:"channel" bson:"channel"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
}

// TableName returns the name of the database table
// associated with the Order model.
func (o Order) TableName() string {
	return "orders"
}

// OrderInput is the body of an order placement request.
type OrderInput struct {
	UserID        string        `json:"user_id,omitempty"`
	UserName      string        `json:"user_name,omitempty"`
	Items         []OrderItem   `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Channel       string        `json:"channel,omitempty"`
	// CreatedAt is an optional client timestamp in Unix milliseconds.
	CreatedAt     int64         `json:"created_at,omitempty"`
}

// ToOrder converts the input into a pending order without ID. CreatedAt is
// zero unless the client sent a positive timestamp.
func (in OrderInput) ToOrder() Order {
	channel := in.Channel
	if channel == "" {
		channel = DefaultOrderChannel
	}

	var createdAt time.Time
	if in.CreatedAt > 0 {
		createdAt = time.UnixMilli(in.CreatedAt).UTC()
	}

	return Order{
		UserID:        in.UserID,
		UserName:      in.UserName,
		Items:         in.Items,
		Total:         in.Total,
		Status:        OrderPending,
		PaymentMethod: in.PaymentMethod,
		Channel:       channel,
		CreatedAt:     createdAt,
	}
}
