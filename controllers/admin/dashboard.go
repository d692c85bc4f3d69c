package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vikaskambale6631/medishop-api/models"
	"gorm.io/gorm"
)

// GET /dashboard
func DashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users, medicines, orders, pendingOrders int64

		if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&models.Medicine{}).Count(&medicines).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("order_status = ?", models.OrderStatusPlaced).
			Count(&pendingOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":          users,
			"medicines":      medicines,
			"orders":         orders,
			"pending_orders": pendingOrders,
		})
	}
}
