package services

import (
	"shop-service/internal/domain"
	"time"
)

func cartFixture(orderID, customerID uint64, lines ...domain.OrderLine) *domain.Order {
	key := customerID
	return &domain.Order{
		ID:         orderID,
		CustomerID: customerID,
		Status:     domain.StatusCart,
		CartKey:    &key,
		Lines:      lines,
		CreatedAt:  time.Now(),
	}
}

func lineFixture(id, orderID, productID uint64, quantity, unitPrice int64) domain.OrderLine {
	return domain.OrderLine{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

func productFixture(id uint64, name string, price, stock int64) *domain.Product {
	return &domain.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Stock:     stock,
		Available: stock > 0,
	}
}

const (
	testCustomerID = uint64(7)
	testOrderID    = uint64(10)
	testProductID  = uint64(1)
	testAddressID  = uint64(3)
	testShippingID = uint64(2)
)
