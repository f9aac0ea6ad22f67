package cache

import (
	"context"
	"errors"

	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
)

// CartCache holds populated cart views keyed by user. Mutating
// operations must invalidate the owner's entry.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.CartView, error)
	Set(ctx context.Context, userID string, cart *domain.CartView) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
