package cart_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// GetCart godoc
// @Summary Get the cart with expanded details and live pricing
// @Description Each line is expanded against the live catalog. Lines whose product or deal has vanished are skipped; expired deal lines are kept but flagged and excluded from the total.
// @Tags Store - Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/cart [get]
func GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	view, err := services.GetCartService().GetCart(ctx, userID)
	if err != nil {
		log.Printf("[store.cart.get] ❌ user=%s err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched successfully", view))
}
