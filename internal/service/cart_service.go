package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Mrfarooqui038501/Ecommerce/internal/cache"
	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

// CartService owns the mapping from a user to their in-progress
// selection. Every mutation runs as one transaction spanning the cart
// and the affected product, so cart contents and stock never drift
// apart: on any failure both are left untouched.
type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	tx       repository.TxRunner
	cache    cache.CartCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(
	products repository.ProductRepository,
	carts repository.CartRepository,
	tx repository.TxRunner,
	cartCache cache.CartCache,
) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
		tx:       tx,
		cache:    cartCache,
	}
}

// AddItem reserves quantity units of the product into the user's cart,
// creating the cart lazily. The availability check for an existing line
// is against the current remaining stock, which already excludes units
// reserved by this cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, &ValidationError{Message: "quantity must be at least 1"}
	}

	var view *domain.CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if quantity > product.Quantity {
			return &InsufficientStockError{Product: product.Name, Available: product.Quantity}
		}

		cart, err := s.carts.FindByUser(ctx, userID)
		if errors.Is(err, repository.ErrCartNotFound) {
			cart = &domain.Cart{User: userID}
		} else if err != nil {
			return err
		}

		if line := cart.Line(productID); line != nil {
			if line.Quantity+quantity > product.Quantity {
				return &InsufficientStockError{
					Product:   product.Name,
					Available: product.Quantity - line.Quantity,
				}
			}
			line.Quantity += quantity
		} else {
			cart.Items = append(cart.Items, domain.CartItem{Product: productID, Quantity: quantity})
		}

		if err := s.products.AdjustStock(ctx, productID, -quantity); err != nil {
			if errors.Is(err, repository.ErrStockConflict) {
				return &InsufficientStockError{Product: product.Name, Available: product.Quantity}
			}
			return err
		}
		if err := s.carts.Save(ctx, cart); err != nil {
			return err
		}

		view, err = s.populate(ctx, cart)
		return err
	})
	if err != nil {
		return nil, mapCartError(err)
	}

	s.invalidate(userID)
	return view, nil
}

// GetCart is read-only and never fails for a missing cart: it returns
// the empty view instead.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*domain.CartView, error) {
	key := userID.Hex()

	// Collapse concurrent cache misses for the same user onto one load.
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		view, err := s.cache.Get(ctx, key)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.WarnContext(ctx, "cart cache get failed", "error", err)
		}

		cart, err := s.carts.FindByUser(ctx, userID)
		if errors.Is(err, repository.ErrCartNotFound) {
			return &domain.CartView{Items: []domain.CartLine{}}, nil
		}
		if err != nil {
			return nil, err
		}

		view, err = s.populate(ctx, cart)
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, key, view); err != nil {
				slog.Warn("cart cache set failed", "error", err)
			}
		}()

		return view, nil
	})
	if err != nil {
		return nil, mapCartError(err)
	}
	return v.(*domain.CartView), nil
}

// UpdateItemQuantity sets an existing line to newQuantity, returning
// stock when the quantity shrinks and reserving more when it grows.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, newQuantity int) (*domain.CartView, error) {
	if newQuantity < 1 {
		return nil, &ValidationError{Message: "quantity must be at least 1"}
	}

	var view *domain.CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		line := cart.Line(productID)
		if line == nil {
			return &NotFoundError{Resource: "item"}
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		delta := newQuantity - line.Quantity
		if delta > 0 && product.Quantity < delta {
			return &InsufficientStockError{Product: product.Name, Available: product.Quantity}
		}

		// A negative delta returns stock to the product.
		if delta != 0 {
			if err := s.products.AdjustStock(ctx, productID, -delta); err != nil {
				if errors.Is(err, repository.ErrStockConflict) {
					return &InsufficientStockError{Product: product.Name, Available: product.Quantity}
				}
				return err
			}
		}

		line.Quantity = newQuantity
		if err := s.carts.Save(ctx, cart); err != nil {
			return err
		}

		view, err = s.populate(ctx, cart)
		return err
	})
	if err != nil {
		return nil, mapCartError(err)
	}

	s.invalidate(userID)
	return view, nil
}

// RemoveItem drops the line and returns its full quantity to the
// product's stock. The cart may become empty; it is not deleted.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*domain.CartView, error) {
	var view *domain.CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		line := cart.Line(productID)
		if line == nil {
			return &NotFoundError{Resource: "item"}
		}

		if err := s.products.AdjustStock(ctx, productID, line.Quantity); err != nil {
			return err
		}

		cart.RemoveLine(productID)
		if err := s.carts.Save(ctx, cart); err != nil {
			return err
		}

		view, err = s.populate(ctx, cart)
		return err
	})
	if err != nil {
		return nil, mapCartError(err)
	}

	s.invalidate(userID)
	return view, nil
}

// populate resolves each line's product and computes the running total.
func (s *CartService) populate(ctx context.Context, cart *domain.Cart) (*domain.CartView, error) {
	view := &domain.CartView{Items: make([]domain.CartLine, 0, len(cart.Items))}
	for _, item := range cart.Items {
		product, err := s.products.FindByID(ctx, item.Product)
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, domain.CartLine{Product: *product, Quantity: item.Quantity})
		view.Total += product.Price * float64(item.Quantity)
	}
	return view, nil
}

func (s *CartService) invalidate(userID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID.Hex()); err != nil {
		slog.Warn("cart cache invalidate failed", "error", err)
	}
}

// mapCartError narrows repository sentinels to the service taxonomy.
func mapCartError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return &NotFoundError{Resource: "product"}
	case errors.Is(err, repository.ErrCartNotFound):
		return &NotFoundError{Resource: "cart"}
	default:
		return err
	}
}
