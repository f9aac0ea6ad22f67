package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Mrfarooqui038501/Ecommerce/internal/cache"
	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/payments"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService converts carts into immutable order records. The direct
// path (PlaceOrder) decrements stock and clears the cart in one
// transaction with the order write. The deferred-payment path
// (CreateCheckoutSession) creates the order up front and leaves stock
// untouched until the provider confirms payment out-of-band.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	users    repository.UserRepository
	tx       repository.TxRunner
	payments payments.Provider
	cache    cache.CartCache

	successURL string
	cancelURL  string
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	tx repository.TxRunner,
	provider payments.Provider,
	cartCache cache.CartCache,
	clientURL string,
) *OrderService {
	return &OrderService{
		orders:     orders,
		carts:      carts,
		products:   products,
		users:      users,
		tx:         tx,
		payments:   provider,
		cache:      cartCache,
		successURL: clientURL + "/order-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  clientURL + "/cart",
	}
}

// PlaceOrder snapshots the user's cart into an order, re-validating
// stock against the current products. Order creation, stock deduction
// and cart deletion commit atomically or not at all.
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, shippingAddress string) (*domain.OrderView, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, &ValidationError{Message: "shipping address is required"}
	}

	var order *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.FindByUser(ctx, userID)
		if errors.Is(err, repository.ErrCartNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		var totalPrice float64
		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			// Re-fetch inside the transaction to defend against a
			// stale cart referencing changed products.
			product, err := s.products.FindByID(ctx, line.Product)
			if errors.Is(err, repository.ErrProductNotFound) {
				return &NotFoundError{Resource: "product"}
			}
			if err != nil {
				return err
			}
			if product.Quantity < line.Quantity {
				return &InsufficientStockError{Product: product.Name, Available: product.Quantity}
			}

			totalPrice += product.Price * float64(line.Quantity)
			items = append(items, domain.OrderItem{
				Product:  product.ID,
				Name:     product.Name,
				Price:    product.Price,
				Quantity: line.Quantity,
			})
		}

		order = &domain.Order{
			User:            userID,
			Items:           items,
			ShippingAddress: shippingAddress,
			TotalPrice:      totalPrice,
			PaymentStatus:   domain.PaymentPending,
			OrderStatus:     domain.OrderStatusPending,
			CreatedAt:       time.Now(),
		}
		if err := s.orders.Insert(ctx, order); err != nil {
			return err
		}

		for _, line := range cart.Items {
			if err := s.products.AdjustStock(ctx, line.Product, -line.Quantity); err != nil {
				return err
			}
		}
		return s.carts.DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCart(userID)
	return s.resolveOwner(ctx, order)
}

// CheckoutSession is what the deferred-payment path hands back to the
// caller: where to redirect the customer and which order was created.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	OrderID   string `json:"orderId"`
}

// CreateCheckoutSession creates a pending order from the caller's cart
// snapshot, opens a hosted payment session for it and clears the cart.
// Stock is deliberately not decremented here: that only happens once
// the provider reports payment completion, which leaves a window where
// stock can be oversold between session creation and payment.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID, items []domain.CheckoutItem, shipping domain.ShippingDetails) (*CheckoutSession, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Message: "invalid cart items"}
	}
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	// Recompute the total defensively instead of trusting the caller.
	var totalPrice float64
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 || item.Product.Price < 0 {
			return nil, &ValidationError{Message: "invalid item structure"}
		}
		totalPrice += item.Product.Price * float64(item.Quantity)
		orderItems = append(orderItems, domain.OrderItem{
			Product:  item.Product.ID,
			Name:     item.Product.Name,
			Price:    item.Product.Price,
			Quantity: item.Quantity,
		})
	}

	shippingAddress := strings.Join([]string{
		shipping.FullName, shipping.Email, shipping.Phone,
		shipping.Address, shipping.City, shipping.State, shipping.Pincode,
	}, ", ")

	order := &domain.Order{
		User:            userID,
		Items:           orderItems,
		ShippingAddress: shippingAddress,
		TotalPrice:      totalPrice,
		PaymentStatus:   domain.PaymentPending,
		OrderStatus:     domain.OrderStatusPending,
		CreatedAt:       time.Now(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	lines := make([]payments.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, payments.LineItem{
			Name:        item.Product.Name,
			Description: item.Product.Description,
			UnitAmount:  int64(math.Round(item.Product.Price * 100)),
			Quantity:    int64(item.Quantity),
		})
	}

	session, err := s.payments.CreateSession(ctx, payments.SessionParams{
		Items:      lines,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		OrderID:    order.ID.Hex(),
		UserID:     userID.Hex(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment session: %w", err)
	}

	if err := s.orders.SetSessionID(ctx, order.ID, session.ID); err != nil {
		return nil, err
	}

	// The order now owns the snapshot; the cart has served its purpose.
	if err := s.carts.DeleteByUser(ctx, userID); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		slog.WarnContext(ctx, "failed to clear cart after checkout", "error", err)
	}
	s.invalidateCart(userID)

	return &CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
		OrderID:   order.ID.Hex(),
	}, nil
}

// GetOrders lists the user's order history, newest first.
func (s *OrderService) GetOrders(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// GetOrderBySession looks up an order by its payment-session id. Only
// the owning user may read it.
func (s *OrderService) GetOrderBySession(ctx context.Context, userID primitive.ObjectID, sessionID string) (*domain.OrderView, error) {
	order, err := s.orders.FindBySessionID(ctx, sessionID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, &NotFoundError{Resource: "order"}
	}
	if err != nil {
		return nil, err
	}
	if order.User != userID {
		return nil, ErrForbidden
	}
	return s.resolveOwner(ctx, order)
}

func (s *OrderService) resolveOwner(ctx context.Context, order *domain.Order) (*domain.OrderView, error) {
	view := &domain.OrderView{Order: *order}
	user, err := s.users.FindByID(ctx, order.User)
	if err != nil {
		// The order itself is intact; surface it without the owner data.
		slog.WarnContext(ctx, "failed to resolve order owner", "error", err)
		return view, nil
	}
	view.User = user.View()
	return view, nil
}

func (s *OrderService) invalidateCart(userID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID.Hex()); err != nil {
		slog.Warn("cart cache invalidate failed", "error", err)
	}
}
