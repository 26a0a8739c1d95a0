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

// UpdateCartItem godoc
// @Summary Change the quantity of a cart line
// @Description Product lines only. Deal lines are fixed bundles and reject quantity changes.
// @Tags Store - Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID (UUID)"
// @Param payload body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/cart/{id} [put]
func UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid cart item ID"))
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	item, err := services.GetCartService().UpdateQuantity(ctx, userID, itemID, req.Quantity)
	if err != nil {
		log.Printf("[store.cart.update] ⚠️ user=%s item=%s err=%v", userID, itemID, err)
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart item updated", item))
}
