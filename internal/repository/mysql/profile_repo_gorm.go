package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) ByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) ByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

type addressRepo struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepo{db: db}
}

func (r *addressRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]domain.Address, error) {
	var out []domain.Address
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addressRepo) ByID(ctx context.Context, id, customerID uint64) (*domain.Address, error) {
	var a domain.Address
	err := r.db.WithContext(ctx).Where("id = ? AND customer_id = ?", id, customerID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Save clears the previous default in the same transaction, so two defaults
// can never coexist for one customer.
func (r *addressRepo) Save(ctx context.Context, address *domain.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&domain.Address{}).
				Where("customer_id = ? AND is_default = ? AND id <> ?", address.CustomerID, true, address.ID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(address).Error
	})
}

func (r *addressRepo) Delete(ctx context.Context, id, customerID uint64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		Delete(&domain.Address{}).Error
}

type paymentMethodRepo struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepo{db: db}
}

func (r *paymentMethodRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]domain.PaymentMethod, error) {
	var out []domain.PaymentMethod
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paymentMethodRepo) ByID(ctx context.Context, id, customerID uint64) (*domain.PaymentMethod, error) {
	var m domain.PaymentMethod
	err := r.db.WithContext(ctx).Where("id = ? AND customer_id = ?", id, customerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *paymentMethodRepo) Save(ctx context.Context, method *domain.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			err := tx.Model(&domain.PaymentMethod{}).
				Where("customer_id = ? AND is_default = ? AND id <> ?", method.CustomerID, true, method.ID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(method).Error
	})
}

func (r *paymentMethodRepo) Delete(ctx context.Context, id, customerID uint64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).
		Delete(&domain.PaymentMethod{}).Error
}
