package cart_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// RemoveCartItem godoc
// @Summary Remove one line from the cart
// @Tags Store - Cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/cart/{id} [delete]
func RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid cart item ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	itemType, err := services.GetCartService().RemoveItem(ctx, userID, itemID)
	if err != nil {
		log.Printf("[store.cart.remove] ⚠️ user=%s item=%s err=%v", userID, itemID, err)
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", gin.H{
		"itemType": itemType,
	}))
}
