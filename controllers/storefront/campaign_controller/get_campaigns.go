package campaign_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetCampaigns godoc
// @Summary List running campaigns
// @Description Active campaigns inside their date window, with their product sale-price overrides.
// @Tags Store - Campaigns
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/campaigns [get]
func GetCampaigns(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	now := time.Now().UTC()

	var campaigns []models.Campaign
	if err := config.StoreGorm.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("start_date DESC").
		Find(&campaigns).Error; err != nil {
		log.Printf("[store.campaigns] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Campaigns fetched successfully", campaigns))
}
