package repository

import (
	"context"

	"shop-service/internal/domain"
)

type ProductRepository interface {
	// ByID returns nil when the product does not exist.
	ByID(ctx context.Context, id uint64) (*domain.Product, error)
	List(ctx context.Context, page, limit int) ([]domain.Product, int64, error)
	Save(ctx context.Context, product *domain.Product) error
}

type ShippingRepository interface {
	// ByID returns nil when the shipping option does not exist.
	ByID(ctx context.Context, id uint64) (*domain.Shipping, error)
	List(ctx context.Context) ([]domain.Shipping, error)
}
