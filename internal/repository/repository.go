package repository

import (
	"context"
	"errors"

	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("user with this email already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateLabel  = errors.New("product id already exists")
	ErrCartNotFound    = errors.New("cart not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrStockConflict means a guarded stock decrement would have taken
	// the product quantity below zero. It must abort the enclosing
	// transaction.
	ErrStockConflict = errors.New("insufficient stock")
)

// Consumers define these interfaces, not the MongoDB implementations.

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	SetLabel(ctx context.Context, id primitive.ObjectID, label string) error
	Count(ctx context.Context) (int64, error)
}

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByLabel(ctx context.Context, productID string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AdjustStock applies a signed delta to the product's quantity.
	// Negative deltas are guarded so quantity can never go below zero;
	// a failed guard returns ErrStockConflict.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
}

type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)
	SetSessionID(ctx context.Context, orderID primitive.ObjectID, sessionID string) error
}

// TxRunner runs fn inside a single atomic transaction. The context
// passed to fn carries the session; repository calls made with it join
// the transaction. Any error from fn aborts the whole transaction and
// leaves no partial effects.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
