package deal_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetAdminDeals godoc
// @Summary List all deals regardless of state
// @Description Unlike the storefront list, this includes inactive and out-of-window deals, each annotated with whether it currently validates.
// @Tags Admin - Deals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by active flag (active|inactive)"
// @Param expired query bool false "Filter by validity window (true = past valid_until)"
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/deals [get]
func GetAdminDeals(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.StoreGorm.WithContext(ctx).Order("created_at DESC")

	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}
	switch c.Query("expired") {
	case "true":
		query = query.Where("valid_until < ?", time.Now().UTC())
	case "false":
		query = query.Where("valid_until >= ?", time.Now().UTC())
	}

	var deals []models.Deal
	if err := query.Find(&deals).Error; err != nil {
		log.Printf("[admin.deals] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	now := time.Now().UTC()
	result := make([]gin.H, 0, len(deals))
	for i := range deals {
		result = append(result, gin.H{
			"deal":               deals[i],
			"is_currently_valid": deals[i].IsValidAt(now),
		})
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Deals fetched successfully", result))
}
