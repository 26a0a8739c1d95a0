package admin_routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/controllers/admin/campaign_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/admin/deal_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/admin/order_controller"
	"github.com/itsAdil45/HajveryStoreBackend/controllers/admin/product_controller"
	"github.com/itsAdil45/HajveryStoreBackend/middleware"
)

// SetupAdminRoutes wires catalog management, deal/campaign management, and
// order fulfillment. Everything here requires an admin JWT and is rate
// limited.
func SetupAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.AdminMiddleware(),
		middleware.RateLimiter(100, time.Minute),
	)
	{
		// Products
		admin.POST("/products", product_controller.AddProduct)
		admin.PUT("/products/:id", product_controller.UpdateProduct)
		admin.DELETE("/products/:id", product_controller.DeleteProduct)

		// Deals
		admin.GET("/deals", deal_controller.GetAdminDeals)
		admin.POST("/deals", deal_controller.AddDeal)
		admin.PUT("/deals/:id", deal_controller.UpdateDeal)
		admin.PATCH("/deals/:id/toggle", deal_controller.ToggleDeal)
		admin.DELETE("/deals/:id", deal_controller.DeleteDeal)

		// Campaigns
		admin.POST("/campaigns", campaign_controller.CreateCampaign)
		admin.PUT("/campaigns/:id/products", campaign_controller.AddCampaignProducts)
		admin.PATCH("/campaigns/:id/toggle", campaign_controller.ToggleCampaign)

		// Orders
		admin.GET("/orders", order_controller.GetOrders)
		admin.GET("/orders/report", order_controller.GetOrderReport)
		admin.GET("/orders/last_report", order_controller.GetLastReport)
		admin.GET("/orders/:id", order_controller.GetOrderByID)
		admin.GET("/orders/:id/invoice", order_controller.GetOrderInvoicePDF)
		admin.PATCH("/orders/:id/status", order_controller.UpdateOrderStatus)
	}
}
