package campaign_controller

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

const uploadTimeout = 30 * time.Second

// CreateCampaign godoc
// @Summary Create a campaign
// @Description Campaigns start empty and inactive; products are attached and the campaign activated in separate calls.
// @Tags Admin - Campaigns
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Campaign title"
// @Param start_date formData string true "RFC3339 start"
// @Param end_date formData string true "RFC3339 end"
// @Param banner formData file true "Banner image"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/campaigns [post]
func CreateCampaign(c *gin.Context) {
	var req models.CampaignRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "start_date must be an RFC3339 timestamp"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "end_date must be an RFC3339 timestamp"))
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "end_date must be after start_date"))
		return
	}

	bannerHeader, err := c.FormFile("banner")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Banner image is required"))
		return
	}
	bannerFile, err := bannerHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cannot read banner image"))
		return
	}
	defer bannerFile.Close()

	ctx, cancel := config.WithCustomTimeout(uploadTimeout)
	defer cancel()

	bannerURL, err := services.GetCloudinaryService().UploadImage(ctx, bannerFile,
		fmt.Sprintf("campaign_%d", time.Now().UnixMilli()), "campaigns")
	if err != nil {
		log.Printf("[admin.campaign.create] ❌ Banner upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload banner"))
		return
	}

	campaign := models.Campaign{
		Title:     req.Title,
		Banner:    bannerURL,
		StartDate: start,
		EndDate:   end,
		IsActive:  false,
		Products:  models.CampaignProductList{},
	}

	if err := config.StoreGorm.WithContext(ctx).Create(&campaign).Error; err != nil {
		log.Printf("[admin.campaign.create] ❌ Failed to create campaign: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create campaign"))
		return
	}

	log.Printf("✅ [admin.campaign.create] Campaign created: %s (%s)", campaign.Title, campaign.ID)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Campaign created successfully", campaign))
}
