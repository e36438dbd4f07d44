package http

import (
	"net/http"
	"strconv"

	"shop-service/internal/domain"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ConfirmOrder(c *gin.Context) {
	var req ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := h.orders.Confirm(c.Request.Context(), customerID(c), services.ConfirmInput{
		AddressID:       req.AddressID,
		ShippingID:      req.ShippingID,
		PaymentChoice:   domain.PaymentChoice(req.PaymentMethod),
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConfirmOrderResponse{OrderID: orderID})
}

func (h *Handler) OrderDetail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.orders.OrderByID(c.Request.Context(), orderID, customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var fee int64
	if order.Shipping != nil {
		fee = order.Shipping.Fee
	}
	resp := OrderDetailResponse{
		ID:          order.ID,
		Status:      order.Status,
		Items:       newOrderItems(order.Lines),
		TotalPrice:  order.TotalPrice,
		ShippingFee: fee,
		GrandTotal:  order.TotalPrice + fee,
		AddressID:   order.ShippingAddressID,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) OrderHistory(c *gin.Context) {
	orders, err := h.orders.History(c.Request.Context(), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, gin.H{
			"id":          orders[i].ID,
			"status":      orders[i].Status,
			"total_price": orders[i].TotalPrice,
			"items":       newOrderItems(orders[i].Lines),
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (h *Handler) OrderProducts(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	products, err := h.orders.OrderProducts(c.Request.Context(), orderID, customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) ListShipping(c *gin.Context) {
	options, err := h.orders.ShippingOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": options})
}

func (h *Handler) PaymentByOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	payment, err := h.orders.PaymentByOrder(c.Request.Context(), orderID, customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payment})
}
