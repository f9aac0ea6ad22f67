package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// OrderStatusPending is the initial free-form order status label.
const OrderStatusPending = "Pending"

// OrderItem snapshots a product's name and price at placement time.
// Later edits to the product never change an existing order line.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Order is an immutable record of a checkout. After creation only the
// payment-session id and payment/order status fields may change, driven
// by the external payment provider.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus     string             `bson:"orderStatus" json:"orderStatus"`
	StripeSessionID string             `bson:"stripeSessionId,omitempty" json:"stripeSessionId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderView is an order with the owning user's public data resolved.
type OrderView struct {
	Order
	User UserView `json:"user"`
}

// ShippingDetails is the structured address collected by the checkout
// form before a payment session is created.
type ShippingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// CheckoutItem is a caller-supplied cart line used by the
// deferred-payment path. The product data is the caller's snapshot;
// the total is still recomputed server-side.
type CheckoutItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
