package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/vikaskambale6631/medishop-api/controllers/catalog"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the unauthenticated catalog surface.
// Listing routes accept an optional ?q= search parameter.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", catalogControllers.Home(db))
	r.GET("/products", catalogControllers.ListMedicines(db))
	r.GET("/category/:slug", catalogControllers.ListByCategory(db))
	r.GET("/product/:slug", catalogControllers.GetMedicineBySlug(db))
}
