package order_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// GetOrders godoc
// @Summary List all orders
// @Description Paginated order list across all customers, newest first, with optional status filter. Each order carries its customer's name and phone.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, processing, completed)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders [get]
func GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.StoreGorm.WithContext(ctx).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[admin.orders] ❌ Count failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var orders []models.Order
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		log.Printf("[admin.orders] ❌ Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	customers, err := customerDetails(c, orders)
	if err != nil {
		log.Printf("[admin.orders] ⚠️ Failed to load customer details: %v", err)
	}

	result := make([]gin.H, 0, len(orders))
	for i := range orders {
		entry := gin.H{"order": orders[i]}
		if customer, ok := customers[orders[i].UserID]; ok {
			entry["customer"] = customer
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Orders fetched successfully", gin.H{
		"orders": result,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	}))
}

type customerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

func customerDetails(c *gin.Context, orders []models.Order) (map[uuid.UUID]customerSummary, error) {
	if len(orders) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	seen := make(map[uuid.UUID]bool, len(orders))
	for _, order := range orders {
		if !seen[order.UserID] {
			seen[order.UserID] = true
			ids = append(ids, order.UserID)
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var rows []customerSummary
	if err := config.StoreGorm.WithContext(ctx).
		Table("users").
		Select("id, name, phone").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]customerSummary, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	return byID, nil
}
