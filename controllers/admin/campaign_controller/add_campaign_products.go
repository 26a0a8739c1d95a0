package campaign_controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// AddCampaignProducts godoc
// @Summary Attach products with sale prices to a campaign
// @Description Replaces the campaign's product list. Every referenced product must exist and every sale price must be non-negative.
// @Tags Admin - Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID (UUID)"
// @Param payload body models.AddCampaignProductsRequest true "Products with sale prices"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/campaigns/{id}/products [put]
func AddCampaignProducts(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid campaign ID"))
		return
	}

	var req models.AddCampaignProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
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
		log.Printf("[admin.campaign.products] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	for _, cp := range req.Products {
		if cp.SalePrice < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Sale prices must be non-negative"))
			return
		}
		var count int64
		if err := config.StoreGorm.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", cp.ProductID).
			Count(&count).Error; err != nil {
			log.Printf("[admin.campaign.products] ❌ Database error: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, fmt.Sprintf("Product %s not found", cp.ProductID)))
			return
		}
	}

	campaign.Products = models.CampaignProductList(req.Products)
	if err := config.StoreGorm.WithContext(ctx).
		Model(&campaign).
		Update("products", campaign.Products).Error; err != nil {
		log.Printf("[admin.campaign.products] ❌ Failed to update products: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update campaign products"))
		return
	}

	log.Printf("✅ [admin.campaign.products] Campaign %s now has %d products", campaign.ID, len(campaign.Products))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Campaign products updated", campaign))
}
