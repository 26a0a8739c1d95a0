package product_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	category_cache "github.com/itsAdil45/HajveryStoreBackend/cache"
	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// DeleteProduct godoc
// @Summary Delete a product
// @Description Removes the product from the catalog. Existing cart lines referencing it are skipped on read; existing orders keep their frozen snapshot.
// @Tags Admin - Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	res := config.StoreGorm.WithContext(ctx).Delete(&models.Product{}, "id = ?", productID)
	if res.Error != nil {
		log.Printf("[admin.product.delete] ❌ Failed to delete product: %v", res.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete product"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	category_cache.Invalidate()
	log.Printf("✅ [admin.product.delete] Product deleted: %s", productID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", nil))
}
