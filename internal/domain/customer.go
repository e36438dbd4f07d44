package domain

import "time"

type Customer struct {
	ID           uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string     `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email        string     `json:"email" gorm:"size:254"`
	PasswordHash string     `json:"-" gorm:"size:100;not null"`
	Fullname     string     `json:"fullname" gorm:"size:255"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	Sex          string     `json:"sex" gorm:"size:10"`
	Tel          string     `json:"tel" gorm:"size:20"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Address is a delivery address owned by one customer. At most one address per
// customer carries IsDefault.
type Address struct {
	ID           uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID   uint64 `json:"customerId" gorm:"not null;index"`
	ReceiverName string `json:"receiverName" gorm:"size:255;not null"`
	HouseNumber  string `json:"houseNumber" gorm:"size:100"`
	District     string `json:"district" gorm:"size:100"`
	Province     string `json:"province" gorm:"size:100"`
	PostCode     string `json:"postCode" gorm:"size:10"`
	IsDefault    bool   `json:"isDefault" gorm:"not null;default:false"`
}

// PaymentMethod is a saved payment instrument (a card). At most one per
// customer carries IsDefault.
type PaymentMethod struct {
	ID         uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint64 `json:"customerId" gorm:"not null;index"`
	Method     string `json:"method" gorm:"size:50;not null"`
	CardNo     string `json:"cardNo" gorm:"size:32"`
	Expired    string `json:"expired" gorm:"size:7"`
	HolderName string `json:"holderName" gorm:"size:255"`
	IsDefault  bool   `json:"isDefault" gorm:"not null;default:false"`
}
