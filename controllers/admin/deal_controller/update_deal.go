package deal_controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// UpdateDeal godoc
// @Summary Update a deal
// @Description Partial multipart update. Orders already placed keep their frozen deal pricing; future pricing is computed from the updated definition.
// @Tags Admin - Deals
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID (UUID)"
// @Param title formData string false "Deal title"
// @Param description formData string false "Description"
// @Param products formData string false "JSON array of {productId, variantName}"
// @Param discount formData number false "Absolute discount"
// @Param valid_from formData string false "RFC3339 start"
// @Param valid_until formData string false "RFC3339 end"
// @Param banner formData file false "Replacement banner image"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/deals/{id} [put]
func UpdateDeal(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid deal ID"))
		return
	}

	ctx, cancel := config.WithCustomTimeout(uploadTimeout)
	defer cancel()

	var deal models.Deal
	if err := config.StoreGorm.WithContext(ctx).First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Deal not found"))
			return
		}
		log.Printf("[admin.deal.update] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if v := c.PostForm("title"); v != "" {
		deal.Title = v
	}
	if v := c.PostForm("description"); v != "" {
		deal.Description = v
	}
	if v := c.PostForm("products"); v != "" {
		constituents, err := parseDealProducts(ctx, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		deal.Products = constituents
	}
	if v := c.PostForm("discount"); v != "" {
		discount, err := strconv.ParseFloat(v, 64)
		if err != nil || discount < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Discount must be a non-negative number"))
			return
		}
		deal.Discount = discount
	}
	if v := c.PostForm("valid_from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "valid_from must be an RFC3339 timestamp"))
			return
		}
		deal.ValidFrom = from
	}
	if v := c.PostForm("valid_until"); v != "" {
		until, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "valid_until must be an RFC3339 timestamp"))
			return
		}
		deal.ValidUntil = until
	}
	if !deal.ValidUntil.After(deal.ValidFrom) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "valid_until must be after valid_from"))
		return
	}

	if bannerHeader, err := c.FormFile("banner"); err == nil {
		bannerFile, err := bannerHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cannot read banner image"))
			return
		}
		defer bannerFile.Close()

		bannerURL, err := services.GetCloudinaryService().UploadImage(ctx, bannerFile,
			fmt.Sprintf("deal_%d", time.Now().UnixMilli()), "deals")
		if err != nil {
			log.Printf("[admin.deal.update] ❌ Banner upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload banner"))
			return
		}
		deal.BannerImage = bannerURL
	}

	if err := config.StoreGorm.WithContext(ctx).Save(&deal).Error; err != nil {
		log.Printf("[admin.deal.update] ❌ Failed to update deal: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update deal"))
		return
	}

	log.Printf("✅ [admin.deal.update] Deal updated: %s", deal.ID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Deal updated successfully", deal))
}
