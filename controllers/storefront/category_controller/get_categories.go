package category_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	category_cache "github.com/itsAdil45/HajveryStoreBackend/cache"
	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetCategories godoc
// @Summary List categories with product counts
// @Description Category list is cached in-process for 5 minutes; admin product writes invalidate it.
// @Tags Store - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/categories [get]
func GetCategories(c *gin.Context) {
	if categories, counts, ok := category_cache.GetList(); ok {
		log.Printf("✅ [store.categories] Cache HIT")
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", gin.H{
			"categories":     categories,
			"product_counts": counts,
		}))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var categories []models.Category
	if err := config.StoreGorm.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		log.Printf("[store.categories] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var rows []struct {
		CategoryID string
		Count      int
	}
	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.Product{}).
		Select("category_id, COUNT(*) as count").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		log.Printf("[store.categories] ❌ Count query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}

	category_cache.SetList(categories, counts)
	log.Printf("✅ [store.categories] Cache MISS - stored %d categories", len(categories))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", gin.H{
		"categories":     categories,
		"product_counts": counts,
	}))
}
