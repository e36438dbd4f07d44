package repository

import (
	"context"

	"shop-service/internal/domain"
)

type CustomerRepository interface {
	ByID(ctx context.Context, id uint64) (*domain.Customer, error)
	ByUsername(ctx context.Context, username string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
}

// AddressRepository and PaymentMethodRepository implementations must clear any
// previous default for the owner in the same transaction that saves a record
// with IsDefault set.
type AddressRepository interface {
	ListByCustomer(ctx context.Context, customerID uint64) ([]domain.Address, error)
	ByID(ctx context.Context, id, customerID uint64) (*domain.Address, error)
	Save(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, id, customerID uint64) error
}

type PaymentMethodRepository interface {
	ListByCustomer(ctx context.Context, customerID uint64) ([]domain.PaymentMethod, error)
	ByID(ctx context.Context, id, customerID uint64) (*domain.PaymentMethod, error)
	Save(ctx context.Context, method *domain.PaymentMethod) error
	Delete(ctx context.Context, id, customerID uint64) error
}
