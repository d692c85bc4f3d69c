package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vikaskambale6631/medishop-api/middleware"
	"github.com/vikaskambale6631/medishop-api/models"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	OrderStatus string `form:"order_status" json:"order_status" binding:"required"`
}

// mapOrderStatus validates a status string against the fixed enumeration.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPlaced):
		return models.OrderStatusPlaced, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusPacked):
		return models.OrderStatusPacked, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// SetOrderStatus moves an order to any of the six enumerated statuses.
// No transition graph is enforced. Stock, payment status and order items
// are never touched.
func SetOrderStatus(db *gorm.DB, orderID uint, status string) error {
	newStatus, err := mapOrderStatus(status)
	if err != nil {
		return err
	}
	res := db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("order_status", newStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// -------- Shopper handlers --------

// GET /order/success/:order_id
func OrderSuccessHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Address").
			Where("id = ? AND user_id = ?", c.Param("order_id"), userID).
			First(&order).Error; err != nil {
			// Another user's order looks exactly like a missing one
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /my/orders
func MyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// -------- Staff handlers --------

// GET /dashboard/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// POST /dashboard/orders/:order_id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := parseID(c.Param("order_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_status is required"})
			return
		}

		if err := SetOrderStatus(db, orderID, req.OrderStatus); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
