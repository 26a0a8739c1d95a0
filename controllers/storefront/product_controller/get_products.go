package product_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetProducts godoc
// @Summary List products
// @Description Paginated product catalog with optional search and category filter. Variant pricing (price range, best price, sale flags) is computed per product.
// @Tags Store - Products
// @Produce json
// @Param q query string false "Search in name and brand"
// @Param category query string false "Category ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/products [get]
func GetProducts(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := config.StoreGorm.WithContext(ctx).Model(&models.Product{})

	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ? OR brand ILIKE ?", "%"+q+"%", "%"+q+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[store.products] ❌ Count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var products []models.Product
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		log.Printf("[store.products] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Products fetched successfully", gin.H{
		"products": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}))
}
