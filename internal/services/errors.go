package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTotalMismatch      = errors.New("client total does not match server total")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrOTPInvalid         = errors.New("invalid or expired verification code")
	ErrOTPTooManyAttempts = errors.New("too many verification attempts")
)

// ValidationError marks malformed input caught before any transaction starts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ProductsNotFoundError names every missing product id so the caller can fix
// the cart in one round trip.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return "products not found: " + strings.Join(e.IDs, ", ")
}

type OutOfStockError struct {
	Title string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product not in stock: %s", e.Title)
}

type InsufficientStockError struct {
	Title string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Title)
}
