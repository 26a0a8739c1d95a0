package deal_controller

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

// AddDeal godoc
// @Summary Create a deal
// @Description Multipart form: deal fields, a JSON-encoded products array (product + variant pairs), and a banner image. Every constituent product and variant must exist.
// @Tags Admin - Deals
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Deal title"
// @Param description formData string true "Description"
// @Param products formData string true "JSON array of {productId, variantName}"
// @Param discount formData number true "Absolute discount off the summed prices"
// @Param valid_from formData string false "RFC3339 start (defaults to now)"
// @Param valid_until formData string true "RFC3339 end"
// @Param banner formData file true "Banner image"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/deals [post]
func AddDeal(c *gin.Context) {
	var req models.DealRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithCustomTimeout(uploadTimeout)
	defer cancel()

	constituents, err := parseDealProducts(ctx, req.Products)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	from, until, err := parseValidity(req.ValidFrom, req.ValidUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
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

	bannerURL, err := services.GetCloudinaryService().UploadImage(ctx, bannerFile,
		fmt.Sprintf("deal_%d", time.Now().UnixMilli()), "deals")
	if err != nil {
		log.Printf("[admin.deal.add] ❌ Banner upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload banner"))
		return
	}

	deal := models.Deal{
		Title:       req.Title,
		Description: req.Description,
		BannerImage: bannerURL,
		Products:    constituents,
		Discount:    req.Discount,
		IsActive:    true,
		ValidFrom:   from,
		ValidUntil:  until,
	}

	if err := config.StoreGorm.WithContext(ctx).Create(&deal).Error; err != nil {
		log.Printf("[admin.deal.add] ❌ Failed to create deal: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create deal"))
		return
	}

	log.Printf("✅ [admin.deal.add] Deal created: %s (%s)", deal.Title, deal.ID)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Deal created successfully", deal))
}
