package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := h.cart.AddItem(c.Request.Context(), customerID(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart", "data": newCartLineResponse(line)})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return
	}

	line, err := h.cart.UpdateItem(c.Request.Context(), customerID(c), productID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	if line == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated", "data": newCartLineResponse(line)})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.cart.RemoveItem(c.Request.Context(), customerID(c), productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart"})
}

func (h *Handler) GetCart(c *gin.Context) {
	order, err := h.cart.Cart(c.Request.Context(), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{"items": []OrderItemResponse{}, "total_price": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id":    order.ID,
		"items":       newOrderItems(order.Lines),
		"total_price": order.TotalPrice,
	})
}
