package campaign_controller

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

// ToggleCampaign godoc
// @Summary Toggle a campaign's active flag
// @Tags Admin - Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/campaigns/{id}/toggle [patch]
func ToggleCampaign(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid campaign ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var campaign models.Campaign
	if err := config.StoreGorm.WithContext(ctx).First(&campaign, "id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Campaign not found"))
			return
		}
		log.Printf("[admin.campaign.toggle] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	campaign.IsActive = !campaign.IsActive
	if err := config.StoreGorm.WithContext(ctx).
		Model(&campaign).
		Update("is_active", campaign.IsActive).Error; err != nil {
		log.Printf("[admin.campaign.toggle] ❌ Failed to toggle campaign: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to toggle campaign"))
		return
	}

	log.Printf("✅ [admin.campaign.toggle] Campaign %s is_active=%v", campaign.ID, campaign.IsActive)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Campaign toggled successfully", gin.H{
		"id":        campaign.ID,
		"is_active": campaign.IsActive,
	}))
}
