package http

import "shop-service/internal/domain"

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email"`
	Fullname    string `json:"fullname"`
	DateOfBirth string `json:"date_of_birth"`
	Sex         string `json:"sex"`
	Tel         string `json:"tel"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Fullname    *string `json:"fullname"`
	DateOfBirth *string `json:"date_of_birth"`
	Sex         *string `json:"sex"`
	Tel         *string `json:"tel"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

type ConfirmOrderRequest struct {
	AddressID       uint64  `json:"address_id"`
	ShippingID      uint64  `json:"shipping_id"`
	PaymentMethod   string  `json:"payment_method"`
	PaymentMethodID *uint64 `json:"payment_method_id"`
}

type ConfirmOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

type AddressRequest struct {
	ReceiverName string `json:"receiver_name" binding:"required"`
	HouseNumber  string `json:"house_number"`
	District     string `json:"district"`
	Province     string `json:"province"`
	PostCode     string `json:"post_code"`
	IsDefault    bool   `json:"is_default"`
}

type PaymentMethodRequest struct {
	Method     string `json:"method" binding:"required"`
	CardNo     string `json:"card_no"`
	Expired    string `json:"expired"`
	HolderName string `json:"holder_name"`
	IsDefault  bool   `json:"is_default"`
}

// CartLineResponse is the write-side view of a cart line: the snapshot price,
// not the live one.
type CartLineResponse struct {
	ID        uint64 `json:"id"`
	ProductID uint64 `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

func newCartLineResponse(line *domain.OrderLine) CartLineResponse {
	return CartLineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		UnitPrice: line.UnitPrice,
		LineTotal: line.LineTotal(),
	}
}

type OrderDetailResponse struct {
	ID          uint64              `json:"id"`
	Status      domain.OrderStatus  `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	TotalPrice  int64               `json:"total_price"`
	ShippingFee int64               `json:"shipping_fee"`
	GrandTotal  int64               `json:"grand_total"`
	AddressID   *uint64             `json:"shipping_address"`
	CreatedAt   string              `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID uint64 `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

func newOrderItems(lines []domain.OrderLine) []OrderItemResponse {
	items := make([]OrderItemResponse, 0, len(lines))
	for i := range lines {
		name := ""
		if lines[i].Product != nil {
			name = lines[i].Product.Name
		}
		items = append(items, OrderItemResponse{
			ProductID: lines[i].ProductID,
			Name:      name,
			UnitPrice: lines[i].UnitPrice,
			Quantity:  lines[i].Quantity,
			LineTotal: lines[i].LineTotal(),
		})
	}
	return items
}
