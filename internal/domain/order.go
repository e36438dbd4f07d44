package domain

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusCart       OrderStatus = "cart"
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// PaymentChoice is how the customer pays at confirmation time. Credit requires
// a saved PaymentMethod reference; QR creates a Payment record up front.
type PaymentChoice string

const (
	PaymentQR     PaymentChoice = "qr"
	PaymentCredit PaymentChoice = "credit"
	PaymentCOD    PaymentChoice = "cod"
)

func (p PaymentChoice) Valid() bool {
	switch p {
	case PaymentQR, PaymentCredit, PaymentCOD:
		return true
	}
	return false
}

type Order struct {
	ID         uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64      `json:"customerId" gorm:"not null;index"`
	Status     OrderStatus `json:"status" gorm:"type:enum('cart','pending','processing','completed','cancelled');default:'cart'"`

	// CartKey mirrors CustomerID while Status is cart and is NULL otherwise.
	// The unique index on it is what makes "one open cart per customer" hold
	// under concurrent first adds. MySQL has no partial indexes.
	CartKey *uint64 `json:"-" gorm:"uniqueIndex"`

	ShippingID        *uint64       `json:"shippingId" gorm:"index"`
	Shipping          *Shipping     `json:"shipping,omitempty" gorm:"foreignKey:ShippingID"`
	ShippingAddressID *uint64       `json:"shippingAddressId"`
	PaymentChoice     PaymentChoice `json:"paymentMethod" gorm:"type:varchar(16);default:''"`
	PaymentMethodID   *uint64       `json:"paymentMethodId"`
	TotalPrice        int64         `json:"totalPrice" gorm:"not null;default:0"`
	Lines             []OrderLine   `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt         time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	if o.Status == StatusCart {
		key := o.CustomerID
		o.CartKey = &key
	} else {
		o.CartKey = nil
	}
	return nil
}

// OrderLine associates a product with an order. UnitPrice is snapshotted from
// the product when the line is created so historical totals survive catalog
// price changes.
type OrderLine struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64    `json:"orderId" gorm:"not null;uniqueIndex:idx_order_product"`
	ProductID uint64    `json:"productId" gorm:"not null;uniqueIndex:idx_order_product"`
	Quantity  int64     `json:"quantity" gorm:"not null"`
	UnitPrice int64     `json:"unitPrice" gorm:"not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (l *OrderLine) LineTotal() int64 {
	return l.Quantity * l.UnitPrice
}
