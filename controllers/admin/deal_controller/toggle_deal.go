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

// ToggleDeal godoc
// @Summary Toggle a deal's active flag
// @Description Deactivated deals immediately stop validating in carts and checkout; re-activation restores them if still inside the validity window.
// @Tags Admin - Deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/deals/{id}/toggle [patch]
func ToggleDeal(c *gin.Context) {
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
		log.Printf("[admin.deal.toggle] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	deal.IsActive = !deal.IsActive
	if err := config.StoreGorm.WithContext(ctx).
		Model(&deal).
		Update("is_active", deal.IsActive).Error; err != nil {
		log.Printf("[admin.deal.toggle] ❌ Failed to toggle deal: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to toggle deal"))
		return
	}

	log.Printf("✅ [admin.deal.toggle] Deal %s is_active=%v", deal.ID, deal.IsActive)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Deal toggled successfully", gin.H{
		"id":        deal.ID,
		"is_active": deal.IsActive,
	}))
}
