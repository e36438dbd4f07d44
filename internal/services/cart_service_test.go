package services

import (
	"context"
	"errors"
	"testing"

	"shop-service/internal/domain"
	"shop-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartService_AddItem(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int64
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockProductRepository)
		expectedError error
		expectedQty   int64
	}{
		{
			name:     "first add creates line with snapshot price",
			quantity: 2,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				products.On("ByID", mock.Anything, testProductID).
					Return(productFixture(testProductID, "Keyboard", 1500, 5), nil)
				orders.On("OpenCart", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
					Return(nil, nil)
				orders.On("CreateLine", mock.Anything, mock.AnythingOfType("*domain.OrderLine")).
					Return(nil).Run(func(args mock.Arguments) {
					line := args.Get(1).(*domain.OrderLine)
					assert.Equal(t, int64(1500), line.UnitPrice)
				})
				orders.On("RefreshTotal", mock.Anything, testOrderID).Return(nil)
			},
			expectedQty: 2,
		},
		{
			name:     "second add increments existing line",
			quantity: 3,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				products.On("ByID", mock.Anything, testProductID).
					Return(productFixture(testProductID, "Keyboard", 1500, 5), nil)
				orders.On("OpenCart", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				existing := lineFixture(11, testOrderID, testProductID, 2, 1500)
				orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
					Return(&existing, nil)
				orders.On("UpdateLineQuantity", mock.Anything, uint64(11), int64(5)).Return(nil)
				orders.On("RefreshTotal", mock.Anything, testOrderID).Return(nil)
			},
			expectedQty: 5,
		},
		{
			name:          "zero quantity rejected",
			quantity:      0,
			setupMocks:    func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:     "unknown product",
			quantity: 1,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				products.On("ByID", mock.Anything, testProductID).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			products := new(mocks.MockProductRepository)
			tt.setupMocks(orders, products)

			service := NewCartService(orders, products)
			line, err := service.AddItem(context.Background(), testCustomerID, testProductID, tt.quantity)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, line)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, line)
				assert.Equal(t, tt.expectedQty, line.Quantity)
			}

			orders.AssertExpectations(t)
			products.AssertExpectations(t)
		})
	}
}

func TestCartService_AddItem_NoStockCheck(t *testing.T) {
	// Stock is only validated at confirmation; adding more than is in stock
	// must succeed.
	orders := new(mocks.MockOrderRepository)
	products := new(mocks.MockProductRepository)

	products.On("ByID", mock.Anything, testProductID).
		Return(productFixture(testProductID, "Keyboard", 1500, 1), nil)
	orders.On("OpenCart", mock.Anything, testCustomerID).
		Return(cartFixture(testOrderID, testCustomerID), nil)
	orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).Return(nil, nil)
	orders.On("CreateLine", mock.Anything, mock.AnythingOfType("*domain.OrderLine")).Return(nil)
	orders.On("RefreshTotal", mock.Anything, testOrderID).Return(nil)

	service := NewCartService(orders, products)
	line, err := service.AddItem(context.Background(), testCustomerID, testProductID, 99)

	assert.NoError(t, err)
	assert.Equal(t, int64(99), line.Quantity)
	orders.AssertExpectations(t)
}

func TestCartService_UpdateItem(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int64
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockProductRepository)
		expectedError error
		wantStockErr  bool
		wantRemoved   bool
	}{
		{
			name:     "update within stock",
			quantity: 3,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				existing := lineFixture(11, testOrderID, testProductID, 1, 1500)
				orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
					Return(&existing, nil)
				products.On("ByID", mock.Anything, testProductID).
					Return(productFixture(testProductID, "Keyboard", 1500, 5), nil)
				orders.On("UpdateLineQuantity", mock.Anything, uint64(11), int64(3)).Return(nil)
				orders.On("RefreshTotal", mock.Anything, testOrderID).Return(nil)
			},
		},
		{
			name:     "quantity below one removes the line",
			quantity: 0,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				existing := lineFixture(11, testOrderID, testProductID, 1, 1500)
				orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
					Return(&existing, nil)
				orders.On("DeleteLine", mock.Anything, uint64(11)).Return(nil)
				orders.On("RefreshTotal", mock.Anything, testOrderID).Return(nil)
			},
			wantRemoved: true,
		},
		{
			name:     "exceeds stock",
			quantity: 9,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				existing := lineFixture(11, testOrderID, testProductID, 1, 1500)
				orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
					Return(&existing, nil)
				products.On("ByID", mock.Anything, testProductID).
					Return(productFixture(testProductID, "Keyboard", 1500, 5), nil)
			},
			wantStockErr: true,
		},
		{
			name:     "no cart",
			quantity: 2,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				orders.On("CartByCustomer", mock.Anything, testCustomerID).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:     "product not in cart",
			quantity: 2,
			setupMocks: func(orders *mocks.MockOrderRepository, products *mocks.MockProductRepository) {
				orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
					Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			products := new(mocks.MockProductRepository)
			tt.setupMocks(orders, products)

			service := NewCartService(orders, products)
			line, err := service.UpdateItem(context.Background(), testCustomerID, testProductID, tt.quantity)

			switch {
			case tt.wantStockErr:
				var stockErr *domain.InsufficientStockError
				assert.True(t, errors.As(err, &stockErr))
				assert.Equal(t, int64(5), stockErr.Available)
				assert.Equal(t, "Keyboard", stockErr.ProductName)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.wantRemoved:
				assert.NoError(t, err)
				assert.Nil(t, line)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.quantity, line.Quantity)
			}

			orders.AssertExpectations(t)
			products.AssertExpectations(t)
		})
	}
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Run("removes existing line", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		products := new(mocks.MockProductRepository)

		orders.On("CartByCustomer", mock.Anything, testCustomerID).
			Return(cartFixture(testOrderID, testCustomerID), nil)
		existing := lineFixture(11, testOrderID, testProductID, 2, 1500)
		orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).
			Return(&existing, nil)
		orders.On("DeleteLine", mock.Anything, uint64(11)).Return(nil)
		orders.On("RefreshTotal", mock.Anything, testOrderID).Return(nil)

		service := NewCartService(orders, products)
		assert.NoError(t, service.RemoveItem(context.Background(), testCustomerID, testProductID))
		orders.AssertExpectations(t)
	})

	t.Run("missing line is not found", func(t *testing.T) {
		orders := new(mocks.MockOrderRepository)
		products := new(mocks.MockProductRepository)

		orders.On("CartByCustomer", mock.Anything, testCustomerID).
			Return(cartFixture(testOrderID, testCustomerID), nil)
		orders.On("LineByProduct", mock.Anything, testOrderID, testProductID).Return(nil, nil)

		service := NewCartService(orders, products)
		err := service.RemoveItem(context.Background(), testCustomerID, testProductID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
