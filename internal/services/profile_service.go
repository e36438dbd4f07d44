package services

import (
	"context"
	"fmt"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	Fullname    string
	DateOfBirth *time.Time
	Sex         string
	Tel         string
}

// ProfileUpdate carries only the fields the caller wants changed.
type ProfileUpdate struct {
	Username    *string
	Email       *string
	Fullname    *string
	DateOfBirth *time.Time
	Sex         *string
	Tel         *string
}

type ProfileService struct {
	customers repository.CustomerRepository
	addresses repository.AddressRepository
	methods   repository.PaymentMethodRepository
}

func NewProfileService(
	customers repository.CustomerRepository,
	addresses repository.AddressRepository,
	methods repository.PaymentMethodRepository,
) *ProfileService {
	return &ProfileService{customers: customers, addresses: addresses, methods: methods}
}

func (s *ProfileService) Register(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	if !validUsername(in.Username) {
		return nil, fmt.Errorf("%w: invalid username", domain.ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if !validFreeText(in.Fullname) {
		return nil, fmt.Errorf("%w: invalid fullname", domain.ErrInvalidInput)
	}

	existing, err := s.customers.ByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username already used", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Fullname:     in.Fullname,
		DateOfBirth:  in.DateOfBirth,
		Sex:          in.Sex,
		Tel:          in.Tel,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Authenticate verifies a username/password pair for login.
func (s *ProfileService) Authenticate(ctx context.Context, username, password string) (*domain.Customer, error) {
	customer, err := s.customers.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: wrong password", domain.ErrInvalidInput)
	}
	return customer, nil
}

func (s *ProfileService) Profile(ctx context.Context, customerID uint64) (*domain.Customer, error) {
	customer, err := s.customers.ByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer", domain.ErrNotFound)
	}
	return customer, nil
}

// UpdateProfile maps the set fields onto the record one by one.
func (s *ProfileService) UpdateProfile(ctx context.Context, customerID uint64, upd ProfileUpdate) (*domain.Customer, error) {
	customer, err := s.Profile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		if !validUsername(*upd.Username) {
			return nil, fmt.Errorf("%w: invalid username", domain.ErrInvalidInput)
		}
		customer.Username = *upd.Username
	}
	if upd.Fullname != nil {
		if !validFreeText(*upd.Fullname) {
			return nil, fmt.Errorf("%w: invalid fullname", domain.ErrInvalidInput)
		}
		customer.Fullname = *upd.Fullname
	}
	if upd.Email != nil {
		customer.Email = *upd.Email
	}
	if upd.DateOfBirth != nil {
		customer.DateOfBirth = upd.DateOfBirth
	}
	if upd.Sex != nil {
		customer.Sex = *upd.Sex
	}
	if upd.Tel != nil {
		customer.Tel = *upd.Tel
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ProfileService) Addresses(ctx context.Context, customerID uint64) ([]domain.Address, error) {
	return s.addresses.ListByCustomer(ctx, customerID)
}

func (s *ProfileService) Address(ctx context.Context, id, customerID uint64) (*domain.Address, error) {
	addr, err := s.addresses.ByID(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, fmt.Errorf("%w: address %d", domain.ErrNotFound, id)
	}
	return addr, nil
}

func (s *ProfileService) CreateAddress(ctx context.Context, address *domain.Address) error {
	if !validFreeText(address.ReceiverName) {
		return fmt.Errorf("%w: invalid receiver name", domain.ErrInvalidInput)
	}
	return s.addresses.Save(ctx, address)
}

func (s *ProfileService) UpdateAddress(ctx context.Context, id, customerID uint64, updated *domain.Address) (*domain.Address, error) {
	addr, err := s.Address(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if !validFreeText(updated.ReceiverName) {
		return nil, fmt.Errorf("%w: invalid receiver name", domain.ErrInvalidInput)
	}

	addr.ReceiverName = updated.ReceiverName
	addr.HouseNumber = updated.HouseNumber
	addr.District = updated.District
	addr.Province = updated.Province
	addr.PostCode = updated.PostCode
	addr.IsDefault = updated.IsDefault
	if err := s.addresses.Save(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *ProfileService) DeleteAddress(ctx context.Context, id, customerID uint64) error {
	if _, err := s.Address(ctx, id, customerID); err != nil {
		return err
	}
	return s.addresses.Delete(ctx, id, customerID)
}

func (s *ProfileService) PaymentMethods(ctx context.Context, customerID uint64) ([]domain.PaymentMethod, error) {
	return s.methods.ListByCustomer(ctx, customerID)
}

func (s *ProfileService) PaymentMethod(ctx context.Context, id, customerID uint64) (*domain.PaymentMethod, error) {
	method, err := s.methods.ByID(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, fmt.Errorf("%w: payment method %d", domain.ErrNotFound, id)
	}
	return method, nil
}

func (s *ProfileService) CreatePaymentMethod(ctx context.Context, method *domain.PaymentMethod) error {
	if !validFreeText(method.HolderName) {
		return fmt.Errorf("%w: invalid holder name", domain.ErrInvalidInput)
	}
	return s.methods.Save(ctx, method)
}

func (s *ProfileService) UpdatePaymentMethod(ctx context.Context, id, customerID uint64, updated *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	method, err := s.PaymentMethod(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if !validFreeText(updated.HolderName) {
		return nil, fmt.Errorf("%w: invalid holder name", domain.ErrInvalidInput)
	}

	method.Method = updated.Method
	method.CardNo = updated.CardNo
	method.Expired = updated.Expired
	method.HolderName = updated.HolderName
	method.IsDefault = updated.IsDefault
	if err := s.methods.Save(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *ProfileService) DeletePaymentMethod(ctx context.Context, id, customerID uint64) error {
	if _, err := s.PaymentMethod(ctx, id, customerID); err != nil {
		return err
	}
	return s.methods.Delete(ctx, id, customerID)
}
