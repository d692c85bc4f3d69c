package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/vikaskambale6631/medishop-api/controllers/address"
	cartControllers "github.com/vikaskambale6631/medishop-api/controllers/cart"
	checkoutControllers "github.com/vikaskambale6631/medishop-api/controllers/checkout"
	orderControllers "github.com/vikaskambale6631/medishop-api/controllers/order"
	userControllers "github.com/vikaskambale6631/medishop-api/controllers/user"
	"github.com/vikaskambale6631/medishop-api/middleware"
	"gorm.io/gorm"
)

// SetupShopperRoutes registers all authenticated, owner-scoped endpoints.
func SetupShopperRoutes(r *gin.Engine, db *gorm.DB) {
	shopper := r.Group("/")
	shopper.Use(middleware.ValidateToken)
	{
		// Shopping cart
		shopper.GET("/cart", cartControllers.GetCartHandler(db))
		shopper.POST("/cart/add/:medicine_id", cartControllers.AddToCartHandler(db))
		shopper.POST("/cart/update/:item_id", cartControllers.UpdateCartItemHandler(db))
		shopper.POST("/cart/remove/:item_id", cartControllers.RemoveCartItemHandler(db))

		// Checkout
		shopper.GET("/checkout", checkoutControllers.GetCheckoutHandler(db))
		shopper.POST("/checkout", checkoutControllers.PostCheckoutHandler(db))

		// Orders
		shopper.GET("/order/success/:order_id", orderControllers.OrderSuccessHandler(db))
		shopper.GET("/my/orders", orderControllers.MyOrdersHandler(db))

		// Profile + addresses
		shopper.GET("/profile", userControllers.ProfileHandler(db))
		shopper.POST("/profile", userControllers.UpdateProfileHandler(db))
		shopper.POST("/address/add", addressControllers.AddAddressHandler(db))
		shopper.POST("/address/:address_id/make-default", addressControllers.MakeDefaultAddressHandler(db))
	}
}
