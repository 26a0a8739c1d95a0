package product_controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	category_cache "github.com/itsAdil45/HajveryStoreBackend/cache"
	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// UpdateProduct godoc
// @Summary Update a product
// @Description Partial multipart update: only the provided fields change. New images replace the existing set.
// @Tags Admin - Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID (UUID)"
// @Param name formData string false "Product name"
// @Param description formData string false "Description"
// @Param brand formData string false "Brand"
// @Param category_id formData string false "Category ID (UUID)"
// @Param category_sub formData string false "Subcategory label"
// @Param stock formData int false "Shared stock across variants"
// @Param variants formData string false "JSON array of variants"
// @Param images formData file false "Replacement images"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [put]
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithCustomTimeout(uploadTimeout)
	defer cancel()

	var product models.Product
	if err := config.StoreGorm.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		log.Printf("[admin.product.update] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if v := c.PostForm("name"); v != "" {
		product.Name = v
	}
	if v := c.PostForm("description"); v != "" {
		product.Description = v
	}
	if v := c.PostForm("brand"); v != "" {
		product.Brand = v
	}
	if v := c.PostForm("category_sub"); v != "" {
		product.CategorySub = v
	}
	if v := c.PostForm("category_id"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category_id"))
			return
		}
		product.CategoryID = categoryID
	}
	if v := c.PostForm("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Stock must be a non-negative integer"))
			return
		}
		product.Stock = stock
	}
	if v := c.PostForm("variants"); v != "" {
		variants, err := parseVariants(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
			return
		}
		product.Variants = variants
	}

	if form, err := c.MultipartForm(); err == nil && len(form.File["images"]) > 0 {
		files := form.File["images"]
		if len(files) < 3 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "At least 3 product images are required"))
			return
		}
		if len(files) > 5 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Maximum 5 images per product"))
			return
		}
		images, err := services.GetCloudinaryService().UploadMultipleImages(ctx, files, "products")
		if err != nil {
			log.Printf("[admin.product.update] ❌ Image upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload images"))
			return
		}
		product.Images = models.ImageList(images)
	}

	if err := config.StoreGorm.WithContext(ctx).Save(&product).Error; err != nil {
		log.Printf("[admin.product.update] ❌ Failed to update product: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	}

	category_cache.Invalidate()
	product.RefreshPricing()
	log.Printf("✅ [admin.product.update] Product updated: %s", product.ID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}
