package order_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetLastReport godoc
// @Summary Sales report for the trailing week, month or year
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param range query string false "Trailing period" Enums(weekly, monthly, yearly) default(weekly)
// @Success 200 {object} models.ApiResponse{data=OrderReport}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/last_report [get]
func GetLastReport(c *gin.Context) {
	now := time.Now().UTC()

	var from time.Time
	switch c.DefaultQuery("range", "weekly") {
	case "weekly":
		from = now.AddDate(0, 0, -7)
	case "monthly":
		from = now.AddDate(0, -1, 0)
	case "yearly":
		from = now.AddDate(-1, 0, 0)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "range must be weekly, monthly or yearly"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	report, err := buildOrderReport(ctx, from, now)
	if err != nil {
		log.Printf("[admin.report.last] ❌ Report query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build report"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Report built successfully", report))
}
