package handlers

import (
	"net/http"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	orderService     services.OrderService
	salesService     services.SalesService
	dashboardService services.DashboardService
	productService   services.ProductService
	userService      services.UserService
}

func NewAdminHandler(
	orderService services.OrderService,
	salesService services.SalesService,
	dashboardService services.DashboardService,
	productService services.ProductService,
	userService services.UserService,
) *AdminHandler {
	return &AdminHandler{
		orderService:     orderService,
		salesService:     salesService,
		dashboardService: dashboardService,
		productService:   productService,
		userService:      userService,
	}
}

// ListUsers lists every account for the admin panel.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, profileJSON(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": ordersJSON(orders)})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("order_number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

// UpdateFulfillment sets the fulfillment status of an order.
func (h *AdminHandler) UpdateFulfillment(c *gin.Context) {
	var req struct {
		FulfillmentStatus string `json:"fulfillmentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.SetFulfillmentStatus(c.Param("order_number"), models.FulfillmentStatus(req.FulfillmentStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderJSON(order))
}

// ModerateReview approves or rejects a pending product review.
func (h *AdminHandler) ModerateReview(c *gin.Context) {
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	review, err := h.productService.ModerateReview(c.Param("id"), *req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DailySales lists the per-day revenue/order-count rows, newest first.
func (h *AdminHandler) DailySales(c *gin.Context) {
	rows, err := h.salesService.GetDailySales()
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"date":       row.Date.Format("2006-01-02"),
			"totalToman": row.TotalToman,
			"orderCount": row.OrderCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"dailySales": out})
}

// DashboardOverview returns the admin dashboard aggregates.
func (h *AdminHandler) DashboardOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetOverview()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
