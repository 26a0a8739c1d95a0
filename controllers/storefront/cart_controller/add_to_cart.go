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

// AddToCart godoc
// @Summary Add a product or deal to the cart
// @Description Product items need productId, variantName and quantity; deal items need dealId only (deals are fixed bundles at quantity 1). Re-adding the same identity merges into the existing line.
// @Tags Store - Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.AddToCartRequest true "Item to add"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/cart [post]
func AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	in := services.AddItemInput{
		ItemType: req.ItemType,
		Quantity: req.Quantity,
	}

	switch req.ItemType {
	case models.ItemTypeProduct:
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
			return
		}
		if req.VariantName == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Variant name is required for product items"))
			return
		}
		in.ProductID = productID
		in.VariantName = req.VariantName
		if in.Quantity == 0 {
			in.Quantity = 1
		}

	case models.ItemTypeDeal:
		dealID, err := uuid.Parse(req.DealID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid deal ID"))
			return
		}
		in.DealID = dealID
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	item, err := services.GetCartService().AddItem(ctx, userID, in)
	if err != nil {
		log.Printf("[store.cart.add] ⚠️ user=%s type=%s err=%v", userID, req.ItemType, err)
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Item added to cart", item))
}
