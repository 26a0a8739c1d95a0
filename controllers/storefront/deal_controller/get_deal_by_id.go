package deal_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetDealByID godoc
// @Summary Get a single deal with computed pricing
// @Tags Store - Deals
// @Produce json
// @Param id path string true "Deal ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/deals/{id} [get]
func GetDealByID(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid deal ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var deal models.Deal
	if err := config.StoreGorm.WithContext(ctx).First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Deal not found"))
			return
		}
		log.Printf("[store.deal] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Deal fetched successfully", withPricing(ctx, &deal)))
}
