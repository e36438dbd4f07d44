package services

import (
	"context"
	"fmt"

	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

// CartService maintains the single open cart per customer. Stock is only
// checked here on explicit quantity updates; the add path defers the check to
// confirmation.
type CartService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewCartService(orders repository.OrderRepository, products repository.ProductRepository) *CartService {
	return &CartService{orders: orders, products: products}
}

// AddItem adds a product to the customer's cart, creating the cart when
// absent. Adding a product already in the cart increments its quantity.
func (s *CartService) AddItem(ctx context.Context, customerID, productID uint64, quantity int64) (*domain.OrderLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", domain.ErrInvalidInput)
	}

	product, err := s.products.ByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}

	order, err := s.orders.OpenCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	line, err := s.orders.LineByProduct(ctx, order.ID, productID)
	if err != nil {
		return nil, err
	}
	if line != nil {
		line.Quantity += quantity
		if err := s.orders.UpdateLineQuantity(ctx, line.ID, line.Quantity); err != nil {
			return nil, err
		}
	} else {
		line = &domain.OrderLine{
			OrderID:   order.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		if err := s.orders.CreateLine(ctx, line); err != nil {
			return nil, err
		}
	}

	if err := s.orders.RefreshTotal(ctx, order.ID); err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateItem sets a line's quantity. A quantity below 1 removes the line and
// returns (nil, nil). The new quantity must not exceed current stock.
func (s *CartService) UpdateItem(ctx context.Context, customerID, productID uint64, quantity int64) (*domain.OrderLine, error) {
	order, err := s.orders.CartByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: cart", domain.ErrNotFound)
	}

	line, err := s.orders.LineByProduct(ctx, order.ID, productID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, fmt.Errorf("%w: product not in cart", domain.ErrNotFound)
	}

	if quantity < 1 {
		if err := s.orders.DeleteLine(ctx, line.ID); err != nil {
			return nil, err
		}
		if err := s.orders.RefreshTotal(ctx, order.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	product, err := s.products.ByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
	}
	if product.Stock < quantity {
		return nil, &domain.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
	}

	line.Quantity = quantity
	if err := s.orders.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
		return nil, err
	}
	if err := s.orders.RefreshTotal(ctx, order.ID); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, productID uint64) error {
	order, err := s.orders.CartByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: cart", domain.ErrNotFound)
	}

	line, err := s.orders.LineByProduct(ctx, order.ID, productID)
	if err != nil {
		return err
	}
	if line == nil {
		return fmt.Errorf("%w: product not in cart", domain.ErrNotFound)
	}

	if err := s.orders.DeleteLine(ctx, line.ID); err != nil {
		return err
	}
	return s.orders.RefreshTotal(ctx, order.ID)
}

// Cart returns the open cart, or nil when the customer has none.
func (s *CartService) Cart(ctx context.Context, customerID uint64) (*domain.Order, error) {
	return s.orders.CartByCustomer(ctx, customerID)
}
