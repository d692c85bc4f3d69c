package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public,
// shopper, and staff route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public catalog + signup/login (no middleware)
	SetupPublicRoutes(r, db)
	SetupAuthRoutes(r, db)

	// Shopper routes (JWT-protected)
	SetupShopperRoutes(r, db)

	// Staff dashboard (JWT + staff capability)
	SetupDashboardRoutes(r, db)
}
