package http

import (
	"net/http"
	"strconv"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth"})
			return
		}
		dob = &parsed
	}

	customer, err := h.profile.Register(c.Request.Context(), services.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Fullname:    req.Fullname,
		DateOfBirth: dob,
		Sex:         req.Sex,
		Tel:         req.Tel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": customer})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.profile.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.IssueToken(customer.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) GetProfile(c *gin.Context) {
	customer, err := h.profile.Profile(c.Request.Context(), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := services.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Fullname: req.Fullname,
		Sex:      req.Sex,
		Tel:      req.Tel,
	}
	if req.DateOfBirth != nil {
		parsed, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth"})
			return
		}
		upd.DateOfBirth = &parsed
	}

	customer, err := h.profile.UpdateProfile(c.Request.Context(), customerID(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := h.profile.Addresses(c.Request.Context(), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": addresses})
}

func (h *Handler) CreateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := &domain.Address{
		CustomerID:   customerID(c),
		ReceiverName: req.ReceiverName,
		HouseNumber:  req.HouseNumber,
		District:     req.District,
		Province:     req.Province,
		PostCode:     req.PostCode,
		IsDefault:    req.IsDefault,
	}
	if err := h.profile.CreateAddress(c.Request.Context(), address); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": address})
}

func (h *Handler) GetAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	address, err := h.profile.Address(c.Request.Context(), id, customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": address})
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address, err := h.profile.UpdateAddress(c.Request.Context(), id, customerID(c), &domain.Address{
		ReceiverName: req.ReceiverName,
		HouseNumber:  req.HouseNumber,
		District:     req.District,
		Province:     req.Province,
		PostCode:     req.PostCode,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": address})
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.profile.DeleteAddress(c.Request.Context(), id, customerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.profile.PaymentMethods(c.Request.Context(), customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": methods})
}

func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method := &domain.PaymentMethod{
		CustomerID: customerID(c),
		Method:     req.Method,
		CardNo:     req.CardNo,
		Expired:    req.Expired,
		HolderName: req.HolderName,
		IsDefault:  req.IsDefault,
	}
	if err := h.profile.CreatePaymentMethod(c.Request.Context(), method); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": method})
}

func (h *Handler) GetPaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
		return
	}

	method, err := h.profile.PaymentMethod(c.Request.Context(), id, customerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": method})
}

func (h *Handler) UpdatePaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
		return
	}

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := h.profile.UpdatePaymentMethod(c.Request.Context(), id, customerID(c), &domain.PaymentMethod{
		Method:     req.Method,
		CardNo:     req.CardNo,
		Expired:    req.Expired,
		HolderName: req.HolderName,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": method})
}

func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method id"})
		return
	}

	if err := h.profile.DeletePaymentMethod(c.Request.Context(), id, customerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted"})
}
