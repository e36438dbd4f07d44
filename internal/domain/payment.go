package domain

import "time"

// Payment is created at confirmation for prepaid (QR) orders.
// Amount = order total + shipping fee.
type Payment struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64    `json:"orderId" gorm:"not null;uniqueIndex"`
	Amount    int64     `json:"amount" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
