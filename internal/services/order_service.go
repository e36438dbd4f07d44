package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"shop-service/internal/domain"
	rabbit "shop-service/internal/infra/rabbitmq"
	"shop-service/internal/repository"
)

// ConfirmInput is the confirmation request after transport decoding.
type ConfirmInput struct {
	AddressID       uint64
	ShippingID      uint64
	PaymentChoice   domain.PaymentChoice
	PaymentMethodID *uint64
}

// OrderService runs the order confirmation workflow and the customer-scoped
// order reads.
type OrderService struct {
	orders    repository.OrderRepository
	shippings repository.ShippingRepository
	payments  repository.PaymentRepository
	addresses repository.AddressRepository
	customers repository.CustomerRepository
	publisher rabbit.PublisherInterface
}

func NewOrderService(
	orders repository.OrderRepository,
	shippings repository.ShippingRepository,
	payments repository.PaymentRepository,
	addresses repository.AddressRepository,
	customers repository.CustomerRepository,
	publisher rabbit.PublisherInterface,
) *OrderService {
	return &OrderService{
		orders:    orders,
		shippings: shippings,
		payments:  payments,
		addresses: addresses,
		customers: customers,
		publisher: publisher,
	}
}

// Confirm converts the customer's cart into a pending order: validates the
// request, settles stock atomically across all lines, and publishes the
// confirmation summary after commit. The notification is fire-and-forget; the
// order is confirmed whether or not it gets delivered.
func (s *OrderService) Confirm(ctx context.Context, customerID uint64, in ConfirmInput) (uint64, error) {
	cart, err := s.orders.CartByCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if cart == nil {
		return 0, fmt.Errorf("%w: no open cart", domain.ErrNotFound)
	}

	if in.AddressID == 0 || in.ShippingID == 0 || in.PaymentChoice == "" {
		return 0, fmt.Errorf("%w: address_id, shipping_id and payment_method are required", domain.ErrInvalidInput)
	}
	if !in.PaymentChoice.Valid() {
		return 0, fmt.Errorf("%w: unknown payment method %q", domain.ErrInvalidInput, in.PaymentChoice)
	}
	if in.PaymentChoice == domain.PaymentCredit && in.PaymentMethodID == nil {
		return 0, fmt.Errorf("%w: credit payment requires a saved payment method", domain.ErrInvalidInput)
	}

	shipping, err := s.shippings.ByID(ctx, in.ShippingID)
	if err != nil {
		return 0, err
	}
	if shipping == nil {
		return 0, fmt.Errorf("%w: shipping %d", domain.ErrInvalidInput, in.ShippingID)
	}

	if len(cart.Lines) == 0 {
		return 0, fmt.Errorf("%w: cannot confirm an empty order", domain.ErrInvalidInput)
	}

	address, err := s.addresses.ByID(ctx, in.AddressID, customerID)
	if err != nil {
		return 0, err
	}
	if address == nil {
		return 0, fmt.Errorf("%w: address %d", domain.ErrInvalidInput, in.AddressID)
	}

	confirmed, err := s.orders.ConfirmCart(ctx, cart.ID, repository.ConfirmParams{
		AddressID:       in.AddressID,
		ShippingID:      in.ShippingID,
		PaymentChoice:   in.PaymentChoice,
		PaymentMethodID: in.PaymentMethodID,
		ShippingFee:     shipping.Fee,
	})
	if err != nil {
		return 0, err
	}

	go s.publishOrderConfirmed(context.Background(), confirmed, cart.Lines, shipping, address)

	return confirmed.ID, nil
}

func (s *OrderService) publishOrderConfirmed(ctx context.Context, order *domain.Order, lines []domain.OrderLine, shipping *domain.Shipping, address *domain.Address) {
	evt := domain.OrderConfirmedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		ShipMethod:  shipping.Method,
		ShippingFee: shipping.Fee,
		Address:     formatAddress(address),
		GrandTotal:  order.TotalPrice + shipping.Fee,
		ConfirmedAt: time.Now(),
	}
	for i := range lines {
		name := ""
		if lines[i].Product != nil {
			name = lines[i].Product.Name
		}
		evt.Items = append(evt.Items, domain.OrderConfirmedItem{
			ProductName: name,
			Quantity:    lines[i].Quantity,
			UnitPrice:   lines[i].UnitPrice,
			LineTotal:   lines[i].LineTotal(),
		})
	}
	if customer, err := s.customers.ByID(ctx, order.CustomerID); err == nil && customer != nil {
		evt.Contact = customer.Tel
		if evt.Contact == "" {
			evt.Contact = customer.Email
		}
	}

	if err := s.publisher.Publish(ctx, "order.confirmed", evt); err != nil {
		log.Printf("order %d: confirmation notification failed: %v", order.ID, err)
	}
}

func formatAddress(a *domain.Address) string {
	parts := []string{a.ReceiverName, a.HouseNumber, a.District, a.Province, a.PostCode}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func (s *OrderService) OrderByID(ctx context.Context, orderID, customerID uint64) (*domain.Order, error) {
	order, err := s.orders.ByID(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}
	return order, nil
}

func (s *OrderService) History(ctx context.Context, customerID uint64) ([]domain.Order, error) {
	return s.orders.HistoryByCustomer(ctx, customerID)
}

// OrderProducts returns the products referenced by an order's lines.
func (s *OrderService) OrderProducts(ctx context.Context, orderID, customerID uint64) ([]domain.Product, error) {
	order, err := s.OrderByID(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(order.Lines))
	for i := range order.Lines {
		if order.Lines[i].Product != nil {
			products = append(products, *order.Lines[i].Product)
		}
	}
	return products, nil
}

// PaymentByOrder is scoped to the owning customer through the order lookup.
func (s *OrderService) PaymentByOrder(ctx context.Context, orderID, customerID uint64) (*domain.Payment, error) {
	if _, err := s.OrderByID(ctx, orderID, customerID); err != nil {
		return nil, err
	}
	payment, err := s.payments.ByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment for order %d", domain.ErrNotFound, orderID)
	}
	return payment, nil
}

func (s *OrderService) ShippingOptions(ctx context.Context) ([]domain.Shipping, error) {
	return s.shippings.List(ctx)
}
