package http

import (
	"errors"
	"log"
	"net/http"

	"shop-service/internal/domain"
	"shop-service/internal/infra/metrics"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cart    *services.CartService
	orders  *services.OrderService
	catalog *services.CatalogService
	profile *services.ProfileService
	auth    *AuthMiddleware
}

func NewHandler(
	cart *services.CartService,
	orders *services.OrderService,
	catalog *services.CatalogService,
	profile *services.ProfileService,
	auth *AuthMiddleware,
) *Handler {
	return &Handler{cart: cart, orders: orders, catalog: catalog, profile: profile, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, m *metrics.ServerMetrics) {
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	authed := r.Group("/", h.auth.Handler())

	authed.GET("/products", h.ListProducts)
	authed.GET("/products/:id", h.GetProduct)

	authed.POST("/cart/add", h.AddToCart)
	authed.PATCH("/cart/update/:product_id", h.UpdateCartItem)
	authed.DELETE("/cart/remove/:product_id", h.RemoveFromCart)
	authed.GET("/cart", h.GetCart)

	authed.POST("/order/confirm", h.ConfirmOrder)
	authed.GET("/order/history", h.OrderHistory)
	authed.GET("/order/:id", h.OrderDetail)
	authed.GET("/order/:id/products", h.OrderProducts)

	authed.GET("/shipping", h.ListShipping)
	authed.GET("/payment/:order_id", h.PaymentByOrder)

	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpdateProfile)

	authed.GET("/addresses", h.ListAddresses)
	authed.POST("/addresses", h.CreateAddress)
	authed.GET("/addresses/:id", h.GetAddress)
	authed.PUT("/addresses/:id", h.UpdateAddress)
	authed.DELETE("/addresses/:id", h.DeleteAddress)

	authed.GET("/payment-methods", h.ListPaymentMethods)
	authed.POST("/payment-methods", h.CreatePaymentMethod)
	authed.GET("/payment-methods/:id", h.GetPaymentMethod)
	authed.PUT("/payment-methods/:id", h.UpdatePaymentMethod)
	authed.DELETE("/payment-methods/:id", h.DeletePaymentMethod)
}

func respondError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error(), "available": stockErr.Available})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
