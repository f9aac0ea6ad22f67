package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart holds a user's in-progress selection. One cart per user, at most
// one line per product.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Line returns a pointer into Items for the given product, or nil.
func (c *Cart) Line(productID primitive.ObjectID) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveLine drops the line for the given product. Reports whether a
// line was removed.
func (c *Cart) RemoveLine(productID primitive.ObjectID) bool {
	for i := range c.Items {
		if c.Items[i].Product == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// CartView is a cart with its product references resolved and the total
// computed. GetCart on a user without a cart returns the zero view
// (empty items, total 0), never an error.
type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
