package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrForbidden          = errors.New("not allowed to access this order")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFoundError names the missing resource ("product", "cart",
// "item", "order").
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ValidationError carries a user-displayable message about malformed
// caller input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientStockError names the offending product and the number of
// units still available.
type InsufficientStockError struct {
	Product   string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: only %d units available", e.Product, e.Available)
}
