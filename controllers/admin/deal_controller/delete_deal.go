package deal_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// DeleteDeal godoc
// @Summary Delete a deal
// @Description Cart lines referencing the deal are skipped on read; order snapshots keep the frozen constituents and price.
// @Tags Admin - Deals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deal ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/deals/{id} [delete]
func DeleteDeal(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid deal ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	res := config.StoreGorm.WithContext(ctx).Delete(&models.Deal{}, "id = ?", dealID)
	if res.Error != nil {
		log.Printf("[admin.deal.delete] ❌ Failed to delete deal: %v", res.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete deal"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Deal not found"))
		return
	}

	log.Printf("✅ [admin.deal.delete] Deal deleted: %s", dealID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Deal deleted successfully", nil))
}
