package order_controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// OrderReport is an aggregate over a date range, computed with raw SQL
// through the pgx pool rather than GORM.
type OrderReport struct {
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	TotalOrders int64              `json:"total_orders"`
	TotalIncome float64            `json:"total_income"`
	ByStatus    map[string]int64   `json:"by_status"`
	ByPayment   map[string]int64   `json:"by_payment_method"`
	ByItemType  map[string]int64   `json:"by_item_type"`
}

// GetOrderReport godoc
// @Summary Sales report for a date range
// @Description Aggregates order count, income, and breakdowns by status, payment method and item type (product vs deal lines).
// @Tags Admin - Reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "RFC3339 range start"
// @Param to query string true "RFC3339 range end"
// @Success 200 {object} models.ApiResponse{data=OrderReport}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/report [get]
func GetOrderReport(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "from must be an RFC3339 timestamp"))
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "to must be an RFC3339 timestamp"))
		return
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "to must be after from"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	report, err := buildOrderReport(ctx, from, to)
	if err != nil {
		log.Printf("[admin.report] ❌ Report query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build report"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Report built successfully", report))
}

func buildOrderReport(ctx context.Context, from, to time.Time) (*OrderReport, error) {
	report := &OrderReport{
		From:       from,
		To:         to,
		ByStatus:   map[string]int64{},
		ByPayment:  map[string]int64{},
		ByItemType: map[string]int64{},
	}

	err := config.StoreDB.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&report.TotalOrders, &report.TotalIncome)
	if err != nil {
		return nil, err
	}

	statusRows, err := config.StoreDB.Query(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer statusRows.Close()
	for statusRows.Next() {
		var status string
		var count int64
		if err := statusRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		report.ByStatus[status] = count
	}
	if err := statusRows.Err(); err != nil {
		return nil, err
	}

	paymentRows, err := config.StoreDB.Query(ctx, `
		SELECT payment_method, COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY payment_method
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer paymentRows.Close()
	for paymentRows.Next() {
		var method string
		var count int64
		if err := paymentRows.Scan(&method, &count); err != nil {
			return nil, err
		}
		report.ByPayment[method] = count
	}
	if err := paymentRows.Err(); err != nil {
		return nil, err
	}

	// Order items live in a jsonb column; unnest to count product vs deal
	// lines.
	itemRows, err := config.StoreDB.Query(ctx, `
		SELECT item->>'itemType', COUNT(*)
		FROM orders, jsonb_array_elements(items) AS item
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY 1
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var itemType string
		var count int64
		if err := itemRows.Scan(&itemType, &count); err != nil {
			return nil, err
		}
		report.ByItemType[itemType] = count
	}
	return report, itemRows.Err()
}
