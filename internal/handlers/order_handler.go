package handlers

import (
	"net/http"

	"github.com/nimamdd/medident/internal/middleware"
	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	checkoutService services.CheckoutService
	orderService    services.OrderService
}

func NewOrderHandler(checkoutService services.CheckoutService, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

type checkoutItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type checkoutRequest struct {
	Phone            string                `json:"phone" binding:"required"`
	NationalID       string                `json:"nationalId" binding:"required"`
	City             string                `json:"city" binding:"required"`
	Address          string                `json:"address" binding:"required"`
	PostalCode       string                `json:"postalCode" binding:"required"`
	ClientTotalToman int64                 `json:"clientTotalToman"`
	Items            []checkoutItemRequest `json:"items" binding:"required"`
}

// CreateCheckout creates an order and checkout from cart items.
func (h *OrderHandler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	items := make([]services.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	user := middleware.CurrentUser(c)
	order, err := h.checkoutService.CreateOrder(user.ID, services.ShippingSnapshot{
		Phone:      req.Phone,
		NationalID: req.NationalID,
		City:       req.City,
		Address:    req.Address,
		PostalCode: req.PostalCode,
	}, req.ClientTotalToman, items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, orderJSON(order))
}

// ListMyOrders lists the current user's orders, newest first.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.orderService.ListOrdersForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordersJSON(orders)})
}

// GetMyOrder retrieves one of the current user's orders by order number.
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	order, err := h.orderService.GetOrderForUser(c.Param("order_number"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

// UpdatePayment transitions payment status for one of the current user's
// orders (placeholder for the payment gateway callback).
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	var req struct {
		PaymentStatus string `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user := middleware.CurrentUser(c)
	orderNumber := c.Param("order_number")

	// Ownership check before mutating anything.
	if _, err := h.orderService.GetOrderForUser(orderNumber, user.ID); err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orderService.SetPaymentStatus(orderNumber, models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderJSON(order))
}
