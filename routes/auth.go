package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vikaskambale6631/medishop-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers signup and login.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/signup", auth.SignupHandler(db)) // Creates user + cart together
	r.POST("/login", auth.LoginHandler(db))
}
