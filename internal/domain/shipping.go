package domain

// Shipping is immutable reference data: a delivery method with a flat fee.
type Shipping struct {
	ID     uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Method string `json:"method" gorm:"size:100;not null"`
	Fee    int64  `json:"fee" gorm:"not null"`
	Tel    string `json:"tel" gorm:"size:20"`
}
