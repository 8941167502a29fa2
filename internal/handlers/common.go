package handlers

import (
	"errors"
	"net/http"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Business-rule
// failures always surface as a single descriptive message.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.ProductsNotFoundError
	var outOfStockErr *services.OutOfStockError
	var insufficientErr *services.InsufficientStockError

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &outOfStockErr),
		errors.As(err, &insufficientErr),
		errors.Is(err, services.ErrTotalMismatch),
		errors.Is(err, services.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOTPTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func profileJSON(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"phone":      user.Phone,
		"email":      user.Email,
		"fullName":   user.FullName,
		"nationalId": user.NationalID,
		"city":       user.City,
		"address":    user.Address,
		"role":       user.Role,
		"isActive":   user.IsActive,
		"dateJoined": user.DateJoined,
	}
}

func checkoutItemJSON(item models.CheckoutItem) gin.H {
	out := gin.H{
		"productId":      item.ProductID,
		"quantity":       item.Quantity,
		"unitPriceToman": item.UnitPriceToman,
		"lineTotalToman": item.LineTotalToman,
	}
	if item.Product != nil {
		out["productTitle"] = item.Product.Title
	}
	return out
}

func checkoutJSON(checkout *models.Checkout) gin.H {
	if checkout == nil {
		return nil
	}
	items := make([]gin.H, 0, len(checkout.Items))
	for _, item := range checkout.Items {
		items = append(items, checkoutItemJSON(item))
	}
	return gin.H{
		"phone":            checkout.Phone,
		"nationalId":       checkout.NationalID,
		"city":             checkout.City,
		"address":          checkout.Address,
		"postalCode":       checkout.PostalCode,
		"clientTotalToman": checkout.ClientTotalToman,
		"items":            items,
	}
}

func orderJSON(order *models.Order) gin.H {
	out := gin.H{
		"orderNumber":       order.OrderNumber,
		"amountToman":       order.AmountToman,
		"status":            order.Status,
		"paymentStatus":     order.PaymentStatus,
		"fulfillmentStatus": order.FulfillmentStatus,
		"createdAt":         order.CreatedAt,
	}
	if order.Checkout != nil {
		out["checkout"] = checkoutJSON(order.Checkout)
	}
	if order.User != nil {
		out["user"] = gin.H{
			"id":       order.User.ID,
			"phone":    order.User.Phone,
			"fullName": order.User.FullName,
		}
	}
	return out
}

func ordersJSON(orders []models.Order) []gin.H {
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderJSON(&orders[i]))
	}
	return out
}
