package storefront_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/controllers/auth_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/storefront/campaign_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/storefront/cart_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/storefront/category_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/storefront/deal_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/storefront/order_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/storefront/product_controller"
	"github.com/itsAdil45/HajveryStoreBackend/middleware"
)

// SetupStorefrontRoutes wires the customer-facing surface: auth, catalog
// browsing, cart and checkout.
func SetupStorefrontRoutes(rg *gin.RouterGroup) {
	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════

	auth := rg.Group("/auth")
	auth.POST("/register", auth_controller.Register)
	auth.POST("/login", auth_controller.Login)

	rg.GET("/products", product_controller.GetProducts)
	rg.GET("/products/:id", product_controller.GetProductByID)
	rg.GET("/deals", deal_controller.GetDeals)
	rg.GET("/deals/:id", deal_controller.GetDealByID)
	rg.GET("/categories", category_controller.GetCategories)
	rg.GET("/campaigns", campaign_controller.GetCampaigns)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth Required)
	// ════════════════════════════════════════════════════════════

	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.PUT("/auth/fcm-token", auth_controller.UpdateFCMToken)

		// Cart
		protected.POST("/cart", cart_controller.AddToCart)
		protected.GET("/cart", cart_controller.GetCart)
		protected.GET("/cart/summary", cart_controller.GetCartSummary)
		protected.PUT("/cart/:id", cart_controller.UpdateCartItem)
		protected.DELETE("/cart/:id", cart_controller.RemoveCartItem)
		protected.DELETE("/cart", cart_controller.ClearCart)

		// Orders
		protected.POST("/orders/checkout", order_controller.Checkout)
		protected.GET("/orders", order_controller.GetMyOrders)
		protected.GET("/orders/:id", order_controller.GetMyOrderDetails)
	}
}
