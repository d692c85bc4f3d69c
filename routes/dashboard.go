package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/vikaskambale6631/medishop-api/controllers/admin"
	orderControllers "github.com/vikaskambale6631/medishop-api/controllers/order"
	"github.com/vikaskambale6631/medishop-api/middleware"
	"gorm.io/gorm"
)

// SetupDashboardRoutes registers the staff-only surface. Every route is
// behind the staff capability check; non-staff callers get a flat 403.
func SetupDashboardRoutes(r *gin.Engine, db *gorm.DB) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.ValidateToken, middleware.RequireStaff())
	{
		dashboard.GET("", adminController.DashboardStats(db))

		// Catalog management
		medicines := dashboard.Group("/medicines")
		{
			medicines.GET("", adminController.ListMedicines(db))
			medicines.POST("", adminController.CreateMedicine(db))
			medicines.PUT("/:id", adminController.UpdateMedicine(db))
			medicines.DELETE("/:id", adminController.DeleteMedicine(db))
		}

		categories := dashboard.Group("/categories")
		{
			categories.GET("", adminController.ListCategories(db))
			categories.POST("", adminController.CreateCategory(db))
			categories.PUT("/:id", adminController.UpdateCategory(db))
			categories.DELETE("/:id", adminController.DeleteCategory(db))
		}

		// Order management
		orders := dashboard.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrdersHandler(db))
			orders.POST("/:order_id/status", orderControllers.UpdateOrderStatusHandler(db))
			orders.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}
	}
}
