package domain

import "time"

// OrderConfirmedEvent is the itemized summary published after a confirmation
// commits. Delivery is fire-and-forget.
type OrderConfirmedEvent struct {
	OrderID     uint64               `json:"orderId"`
	CustomerID  uint64               `json:"customerId"`
	Contact     string               `json:"contact"`
	Items       []OrderConfirmedItem `json:"items"`
	ShipMethod  string               `json:"shippingMethod"`
	ShippingFee int64                `json:"shippingFee"`
	Address     string               `json:"deliveryAddress"`
	GrandTotal  int64                `json:"grandTotal"`
	ConfirmedAt time.Time            `json:"confirmedAt"`
}

type OrderConfirmedItem struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
}
