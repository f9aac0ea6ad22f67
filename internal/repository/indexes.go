package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes every collection relies on: the
// uniqueness constraints (one cart per user, unique product labels,
// unique emails, unique payment-session ids) and the sort indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, c := range []interface {
		CreateIndexes(ctx context.Context) error
	}{
		&userRepository{collection: db.Collection("users")},
		&productRepository{collection: db.Collection("products")},
		&cartRepository{collection: db.Collection("carts")},
		&orderRepository{collection: db.Collection("orders")},
	} {
		if err := c.CreateIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
