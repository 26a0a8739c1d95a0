package product_controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	category_cache "github.com/itsAdil45/HajveryStoreBackend/cache"
	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// parseVariants decodes and sanity-checks the JSON-encoded variant list
// that rides alongside the image files in the multipart form.
func parseVariants(raw string) (models.VariantList, error) {
	var variants []models.Variant
	if err := json.Unmarshal([]byte(raw), &variants); err != nil {
		return nil, errors.New("variants must be a JSON array")
	}
	if len(variants) == 0 {
		return nil, errors.New("at least one variant is required")
	}
	for _, v := range variants {
		if v.Name == "" {
			return nil, errors.New("every variant needs a name")
		}
		if v.Price < 0 {
			return nil, errors.New("variant prices must be non-negative")
		}
		if v.IsOnSale && v.SalePrice == nil {
			return nil, errors.New("variants on sale need a sale price")
		}
	}
	return models.VariantList(variants), nil
}

// AddProduct godoc
// @Summary Create a product
// @Description Multipart form: product fields, a JSON-encoded variants array, and 3-5 image files uploaded to Cloudinary.
// @Tags Admin - Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Product name"
// @Param description formData string true "Description"
// @Param brand formData string true "Brand"
// @Param category_id formData string true "Category ID (UUID)"
// @Param category_sub formData string true "Subcategory label"
// @Param stock formData int true "Shared stock across variants"
// @Param variants formData string true "JSON array of variants"
// @Param images formData file true "Product images (3-5 files)"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products [post]
func AddProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	variants, err := parseVariants(req.Variants)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithCustomTimeout(uploadTimeout)
	defer cancel()

	var category models.Category
	if err := config.StoreGorm.WithContext(ctx).First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category_id"))
			return
		}
		log.Printf("[admin.product.add] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Multipart form required"))
		return
	}
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
		log.Printf("[admin.product.add] ❌ Image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to upload images"))
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		CategoryID:  req.CategoryID,
		CategorySub: req.CategorySub,
		Images:      models.ImageList(images),
		Stock:       req.Stock,
		Variants:    variants,
	}

	if err := config.StoreGorm.WithContext(ctx).Create(&product).Error; err != nil {
		log.Printf("[admin.product.add] ❌ Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product"))
		return
	}

	category_cache.Invalidate()
	product.RefreshPricing()
	log.Printf("✅ [admin.product.add] Product created: %s (%s)", product.Name, product.ID)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}
