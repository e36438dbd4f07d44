package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product prices are integer minor units (satang).
type Product struct {
	ID             uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" gorm:"size:50;not null"`
	Detail         string    `json:"detail" gorm:"size:500"`
	Price          int64     `json:"price" gorm:"not null"`
	Stock          int64     `json:"stock" gorm:"not null"`
	Category       string    `json:"category" gorm:"size:255"`
	ProductionDate time.Time `json:"productionDate"`
	ExpirationDate time.Time `json:"expirationDate"`
	Address        string    `json:"address" gorm:"size:50"`
	Available      bool      `json:"available" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Availability is derived, never written by callers.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Available = p.Stock > 0
	return nil
}
