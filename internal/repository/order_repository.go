package repository

import (
	"context"

	"shop-service/internal/domain"
)

// ConfirmParams carries everything the transactional settlement writes onto
// the order besides the stock decrements.
type ConfirmParams struct {
	AddressID       uint64
	ShippingID      uint64
	PaymentChoice   domain.PaymentChoice
	PaymentMethodID *uint64
	ShippingFee     int64
}

type OrderRepository interface {
	// CartByCustomer returns the customer's open cart with lines and products
	// preloaded, or nil when no cart exists.
	CartByCustomer(ctx context.Context, customerID uint64) (*domain.Order, error)

	// OpenCart returns the customer's open cart, creating it when absent. Safe
	// under concurrent first adds: a duplicate-key insert falls back to a
	// re-fetch.
	OpenCart(ctx context.Context, customerID uint64) (*domain.Order, error)

	LineByProduct(ctx context.Context, orderID, productID uint64) (*domain.OrderLine, error)
	CreateLine(ctx context.Context, line *domain.OrderLine) error
	UpdateLineQuantity(ctx context.Context, lineID uint64, quantity int64) error
	DeleteLine(ctx context.Context, lineID uint64) error

	// RefreshTotal recomputes the order total from its lines.
	RefreshTotal(ctx context.Context, orderID uint64) error

	// ConfirmCart runs the whole stock settlement and state transition in one
	// transaction: lock every line's product, check and decrement stock, set
	// the shipping/address/payment references, move cart -> pending, and
	// create the Payment row for prepaid orders. Any failure rolls the whole
	// thing back; insufficient stock surfaces as *domain.InsufficientStockError.
	ConfirmCart(ctx context.Context, orderID uint64, params ConfirmParams) (*domain.Order, error)

	// ByID is scoped to the owning customer; returns nil when absent or not owned.
	ByID(ctx context.Context, orderID, customerID uint64) (*domain.Order, error)
	HistoryByCustomer(ctx context.Context, customerID uint64) ([]domain.Order, error)
}

type PaymentRepository interface {
	// ByOrder returns nil when no payment exists for the order.
	ByOrder(ctx context.Context, orderID uint64) (*domain.Payment, error)
}
