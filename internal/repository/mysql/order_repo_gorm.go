package mysql

import (
	"context"
	"errors"
	"log"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CartByCustomer(ctx context.Context, customerID uint64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.product_id") }).
		Preload("Lines.Product").
		Where("customer_id = ? AND status = ?", customerID, domain.StatusCart).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) OpenCart(ctx context.Context, customerID uint64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("customer_id = ? AND status = ?", customerID, domain.StatusCart).
			First(&order).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		order = domain.Order{CustomerID: customerID, Status: domain.StatusCart}
		if err := tx.Create(&order).Error; err != nil {
			// Unique cart_key index: a concurrent first add won the insert.
			var existing domain.Order
			ferr := tx.Where("customer_id = ? AND status = ?", customerID, domain.StatusCart).
				First(&existing).Error
			if ferr != nil {
				return err
			}
			order = existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) LineByProduct(ctx context.Context, orderID, productID uint64) (*domain.OrderLine, error) {
	var line domain.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *orderRepo) CreateLine(ctx context.Context, line *domain.OrderLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *orderRepo) UpdateLineQuantity(ctx context.Context, lineID uint64, quantity int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.OrderLine{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

func (r *orderRepo) DeleteLine(ctx context.Context, lineID uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.OrderLine{}, lineID).Error
}

func (r *orderRepo) RefreshTotal(ctx context.Context, orderID uint64) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET total_price = (
		     SELECT COALESCE(SUM(quantity * unit_price), 0)
		     FROM order_lines WHERE order_id = ?
		 )
		 WHERE id = ?`, orderID, orderID).Error
}

// ConfirmCart is the stock settlement. Products are locked in ascending id
// order so two confirmations touching the same products cannot deadlock.
func (r *orderRepo) ConfirmCart(ctx context.Context, orderID uint64, params repository.ConfirmParams) (*domain.Order, error) {
	var confirmed domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if order.Status != domain.StatusCart {
			return domain.ErrNotFound
		}

		var lines []domain.OrderLine
		if err := tx.Where("order_id = ?", orderID).
			Order("product_id").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrInvalidInput
		}

		var total int64
		for i := range lines {
			var product domain.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, lines[i].ProductID).Error; err != nil {
				return err
			}
			if product.Stock < lines[i].Quantity {
				return &domain.InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
				}
			}
			product.Stock -= lines[i].Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
			total += lines[i].LineTotal()
		}

		order.ShippingID = &params.ShippingID
		order.ShippingAddressID = &params.AddressID
		order.PaymentChoice = params.PaymentChoice
		order.PaymentMethodID = params.PaymentMethodID
		order.TotalPrice = total
		order.Status = domain.StatusPending
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if params.PaymentChoice == domain.PaymentQR {
			payment := domain.Payment{OrderID: order.ID, Amount: total + params.ShippingFee}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		}

		confirmed = order
		confirmed.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("order %d confirmed, total %d", confirmed.ID, confirmed.TotalPrice)
	return &confirmed, nil
}

func (r *orderRepo) ByID(ctx context.Context, orderID, customerID uint64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Shipping").
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) HistoryByCustomer(ctx context.Context, customerID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Shipping").
		Where("customer_id = ? AND status <> ?", customerID, domain.StatusCart).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) ByOrder(ctx context.Context, orderID uint64) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
