package cart_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/middleware"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid session"))
		return uuid.Nil, false
	}
	return userID, true
}

// respondCartError maps cart service errors onto HTTP statuses. Unknown
// errors fall through to 500.
func respondCartError(c *gin.Context, err error) {
	var variantErr *models.VariantNotFoundError
	var dealErr *services.InvalidDealError

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
	case errors.Is(err, services.ErrDealNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Deal not found"))
	case errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Quantity must be at least 1"))
	case errors.Is(err, services.ErrDealQuantityFixed):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Deal quantities cannot be changed, deals are fixed bundles"))
	case errors.As(err, &variantErr):
		resp := models.ErrorResponse(c, variantErr.Error())
		resp.Data = gin.H{"available_variants": variantErr.Available}
		c.JSON(http.StatusNotFound, resp)
	case errors.As(err, &dealErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Deal is not currently available: "+dealErr.Reason))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
	}
}
