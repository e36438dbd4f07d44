package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/mocks"
	"shop-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type confirmMocks struct {
	orders    *mocks.MockOrderRepository
	shippings *mocks.MockShippingRepository
	payments  *mocks.MockPaymentRepository
	addresses *mocks.MockAddressRepository
	customers *mocks.MockCustomerRepository
	publisher *mocks.MockPublisher
}

func newConfirmMocks() *confirmMocks {
	return &confirmMocks{
		orders:    new(mocks.MockOrderRepository),
		shippings: new(mocks.MockShippingRepository),
		payments:  new(mocks.MockPaymentRepository),
		addresses: new(mocks.MockAddressRepository),
		customers: new(mocks.MockCustomerRepository),
		publisher: new(mocks.MockPublisher),
	}
}

func (m *confirmMocks) service() *OrderService {
	return NewOrderService(m.orders, m.shippings, m.payments, m.addresses, m.customers, m.publisher)
}

func validConfirmInput() ConfirmInput {
	return ConfirmInput{
		AddressID:     testAddressID,
		ShippingID:    testShippingID,
		PaymentChoice: domain.PaymentQR,
	}
}

func TestOrderService_Confirm(t *testing.T) {
	line := lineFixture(11, testOrderID, testProductID, 2, 1500)
	line.Product = productFixture(testProductID, "Keyboard", 1500, 5)

	tests := []struct {
		name          string
		input         ConfirmInput
		setupMocks    func(*confirmMocks)
		expectedError error
		wantStockErr  bool
	}{
		{
			name:  "successful confirmation",
			input: validConfirmInput(),
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID, line), nil)
				m.shippings.On("ByID", mock.Anything, testShippingID).
					Return(&domain.Shipping{ID: testShippingID, Method: "Fast", Fee: 1000}, nil)
				m.addresses.On("ByID", mock.Anything, testAddressID, testCustomerID).
					Return(&domain.Address{ID: testAddressID, CustomerID: testCustomerID, ReceiverName: "Somchai"}, nil)
				m.orders.On("ConfirmCart", mock.Anything, testOrderID, repository.ConfirmParams{
					AddressID:     testAddressID,
					ShippingID:    testShippingID,
					PaymentChoice: domain.PaymentQR,
					ShippingFee:   1000,
				}).Return(&domain.Order{
					ID:         testOrderID,
					CustomerID: testCustomerID,
					Status:     domain.StatusPending,
					TotalPrice: 3000,
				}, nil)
				m.customers.On("ByID", mock.Anything, testCustomerID).
					Return(&domain.Customer{ID: testCustomerID, Tel: "0812345678"}, nil).Maybe()
				m.publisher.On("Publish", mock.Anything, "order.confirmed", mock.Anything).
					Return(nil).Maybe()
			},
		},
		{
			name:  "no cart",
			input: validConfirmInput(),
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).Return(nil, nil)
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name: "missing address id",
			input: ConfirmInput{
				ShippingID:    testShippingID,
				PaymentChoice: domain.PaymentQR,
			},
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID, line), nil)
			},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name: "unknown payment method",
			input: ConfirmInput{
				AddressID:     testAddressID,
				ShippingID:    testShippingID,
				PaymentChoice: "barter",
			},
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID, line), nil)
			},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name: "credit without saved method",
			input: ConfirmInput{
				AddressID:     testAddressID,
				ShippingID:    testShippingID,
				PaymentChoice: domain.PaymentCredit,
			},
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID, line), nil)
			},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:  "unknown shipping option",
			input: validConfirmInput(),
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID, line), nil)
				m.shippings.On("ByID", mock.Anything, testShippingID).Return(nil, nil)
			},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:  "empty cart cannot confirm",
			input: validConfirmInput(),
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID), nil)
				m.shippings.On("ByID", mock.Anything, testShippingID).
					Return(&domain.Shipping{ID: testShippingID, Method: "Fast", Fee: 1000}, nil)
			},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:  "insufficient stock aborts settlement",
			input: validConfirmInput(),
			setupMocks: func(m *confirmMocks) {
				m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
					Return(cartFixture(testOrderID, testCustomerID, line), nil)
				m.shippings.On("ByID", mock.Anything, testShippingID).
					Return(&domain.Shipping{ID: testShippingID, Method: "Fast", Fee: 1000}, nil)
				m.addresses.On("ByID", mock.Anything, testAddressID, testCustomerID).
					Return(&domain.Address{ID: testAddressID, CustomerID: testCustomerID}, nil)
				m.orders.On("ConfirmCart", mock.Anything, testOrderID, mock.AnythingOfType("repository.ConfirmParams")).
					Return(nil, &domain.InsufficientStockError{ProductName: "Keyboard", Available: 1})
			},
			wantStockErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newConfirmMocks()
			tt.setupMocks(m)

			orderID, err := m.service().Confirm(context.Background(), testCustomerID, tt.input)

			switch {
			case tt.wantStockErr:
				var stockErr *domain.InsufficientStockError
				assert.True(t, errors.As(err, &stockErr))
				assert.Equal(t, "Keyboard", stockErr.ProductName)
				assert.Equal(t, int64(1), stockErr.Available)
				assert.Zero(t, orderID)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Zero(t, orderID)
				m.orders.AssertNotCalled(t, "ConfirmCart", mock.Anything, mock.Anything, mock.Anything)
			default:
				assert.NoError(t, err)
				assert.Equal(t, testOrderID, orderID)
			}

			time.Sleep(100 * time.Millisecond)
			m.orders.AssertExpectations(t)
			m.shippings.AssertExpectations(t)
			m.addresses.AssertExpectations(t)
			m.publisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_Confirm_NotificationFailureSwallowed(t *testing.T) {
	line := lineFixture(11, testOrderID, testProductID, 2, 1500)
	line.Product = productFixture(testProductID, "Keyboard", 1500, 5)

	m := newConfirmMocks()
	m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
		Return(cartFixture(testOrderID, testCustomerID, line), nil)
	m.shippings.On("ByID", mock.Anything, testShippingID).
		Return(&domain.Shipping{ID: testShippingID, Method: "Fast", Fee: 1000}, nil)
	m.addresses.On("ByID", mock.Anything, testAddressID, testCustomerID).
		Return(&domain.Address{ID: testAddressID, CustomerID: testCustomerID}, nil)
	m.orders.On("ConfirmCart", mock.Anything, testOrderID, mock.AnythingOfType("repository.ConfirmParams")).
		Return(&domain.Order{ID: testOrderID, CustomerID: testCustomerID, Status: domain.StatusPending, TotalPrice: 3000}, nil)
	m.customers.On("ByID", mock.Anything, testCustomerID).
		Return(&domain.Customer{ID: testCustomerID, Tel: "0812345678"}, nil).Maybe()
	m.publisher.On("Publish", mock.Anything, "order.confirmed", mock.Anything).
		Return(errors.New("broker down")).Maybe()

	orderID, err := m.service().Confirm(context.Background(), testCustomerID, validConfirmInput())

	assert.NoError(t, err)
	assert.Equal(t, testOrderID, orderID)

	time.Sleep(100 * time.Millisecond)
	m.orders.AssertExpectations(t)
}

func TestOrderService_Confirm_EventPayload(t *testing.T) {
	line := lineFixture(11, testOrderID, testProductID, 2, 1500)
	line.Product = productFixture(testProductID, "Keyboard", 1500, 5)

	m := newConfirmMocks()
	m.orders.On("CartByCustomer", mock.Anything, testCustomerID).
		Return(cartFixture(testOrderID, testCustomerID, line), nil)
	m.shippings.On("ByID", mock.Anything, testShippingID).
		Return(&domain.Shipping{ID: testShippingID, Method: "Fast", Fee: 1000}, nil)
	m.addresses.On("ByID", mock.Anything, testAddressID, testCustomerID).
		Return(&domain.Address{ID: testAddressID, CustomerID: testCustomerID, ReceiverName: "Somchai", Province: "Bangkok"}, nil)
	m.orders.On("ConfirmCart", mock.Anything, testOrderID, mock.AnythingOfType("repository.ConfirmParams")).
		Return(&domain.Order{ID: testOrderID, CustomerID: testCustomerID, Status: domain.StatusPending, TotalPrice: 3000}, nil)
	m.customers.On("ByID", mock.Anything, testCustomerID).
		Return(&domain.Customer{ID: testCustomerID, Tel: "0812345678"}, nil)

	published := make(chan domain.OrderConfirmedEvent, 1)
	m.publisher.On("Publish", mock.Anything, "order.confirmed", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		published <- args.Get(2).(domain.OrderConfirmedEvent)
	})

	_, err := m.service().Confirm(context.Background(), testCustomerID, validConfirmInput())
	assert.NoError(t, err)

	select {
	case evt := <-published:
		assert.Equal(t, testOrderID, evt.OrderID)
		assert.Equal(t, "0812345678", evt.Contact)
		assert.Equal(t, "Fast", evt.ShipMethod)
		assert.Equal(t, int64(1000), evt.ShippingFee)
		assert.Equal(t, int64(4000), evt.GrandTotal)
		assert.Contains(t, evt.Address, "Somchai")
		if assert.Len(t, evt.Items, 1) {
			assert.Equal(t, "Keyboard", evt.Items[0].ProductName)
			assert.Equal(t, int64(2), evt.Items[0].Quantity)
			assert.Equal(t, int64(3000), evt.Items[0].LineTotal)
		}
	case <-time.After(time.Second):
		t.Fatal("confirmation event was not published")
	}
}

func TestOrderService_Reads(t *testing.T) {
	t.Run("order detail scoped to customer", func(t *testing.T) {
		m := newConfirmMocks()
		m.orders.On("ByID", mock.Anything, testOrderID, testCustomerID).Return(nil, nil)

		_, err := m.service().OrderByID(context.Background(), testOrderID, testCustomerID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("payment lookup requires owned order", func(t *testing.T) {
		m := newConfirmMocks()
		m.orders.On("ByID", mock.Anything, testOrderID, testCustomerID).
			Return(&domain.Order{ID: testOrderID, CustomerID: testCustomerID, Status: domain.StatusPending}, nil)
		m.payments.On("ByOrder", mock.Anything, testOrderID).
			Return(&domain.Payment{ID: 5, OrderID: testOrderID, Amount: 4000}, nil)

		payment, err := m.service().PaymentByOrder(context.Background(), testOrderID, testCustomerID)
		assert.NoError(t, err)
		assert.Equal(t, int64(4000), payment.Amount)
	})

	t.Run("missing payment is not found", func(t *testing.T) {
		m := newConfirmMocks()
		m.orders.On("ByID", mock.Anything, testOrderID, testCustomerID).
			Return(&domain.Order{ID: testOrderID, CustomerID: testCustomerID, Status: domain.StatusPending}, nil)
		m.payments.On("ByOrder", mock.Anything, testOrderID).Return(nil, nil)

		_, err := m.service().PaymentByOrder(context.Background(), testOrderID, testCustomerID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
