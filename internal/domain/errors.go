package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// InsufficientStockError names the first product whose stock cannot cover the
// requested quantity, with the count still available.
type InsufficientStockError struct {
	ProductName string
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s (available %d)", e.ProductName, e.Available)
}
