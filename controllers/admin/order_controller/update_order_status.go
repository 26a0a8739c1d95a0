package order_controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/middleware"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/itsAdil45/HajveryStoreBackend/services"
)

// UpdateOrderStatus godoc
// @Summary Update an order's status
// @Description Moves an order between pending, processing and completed. Records an audit event and pushes a notification to the customer's device.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID (UUID)"
// @Param payload body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	req.Status = strings.TrimSpace(strings.ToLower(req.Status))
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Status must be one of: pending, processing, completed"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.StoreGorm.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		log.Printf("[admin.order.status] ❌ Database error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	previous := order.Status
	if err := config.StoreGorm.WithContext(ctx).
		Model(&order).
		Update("status", req.Status).Error; err != nil {
		log.Printf("[admin.order.status] ❌ Failed to update status: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order status"))
		return
	}

	recordStatusEvent(ctx, c, order.ID, previous, req.Status)

	// Customer push, decoupled from the response.
	go func(userID uuid.UUID, status string) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		services.NotifyUser(notifyCtx, services.GetNotifier(), userID.String(),
			"Order Update", fmt.Sprintf("Your order is now %s", status))
	}(order.UserID, req.Status)

	log.Printf("✅ [admin.order.status] Order %s: %s → %s", order.ID, previous, req.Status)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order status updated", gin.H{
		"id":              order.ID,
		"previous_status": previous,
		"status":          req.Status,
	}))
}

func recordStatusEvent(ctx context.Context, c *gin.Context, orderID uuid.UUID, before, after string) {
	raw, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return
	}
	adminID, err := uuid.Parse(raw)
	if err != nil {
		return
	}

	changes, _ := json.Marshal(map[string]any{
		"before": map[string]string{"status": before},
		"after":  map[string]string{"status": after},
	})

	event := models.OrderEvent{
		OrderID: orderID,
		AdminID: adminID,
		Action:  "status_updated",
		Changes: datatypes.JSON(changes),
	}

	if err := config.StoreGorm.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("[admin.order.status] ⚠️ Failed to record audit event: %v", err)
	}
}
