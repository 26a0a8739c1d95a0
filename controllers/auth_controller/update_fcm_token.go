package auth_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/middleware"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// UpdateFCMToken godoc
// @Summary Register a device token for push notifications
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.UpdateFCMTokenRequest true "FCM device token"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/auth/fcm-token [put]
func UpdateFCMToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	res := config.StoreGorm.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("fcm_token", req.FCMToken)
	if res.Error != nil {
		log.Printf("[auth.fcm] ❌ Failed to update FCM token: %v", res.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update device token"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Device token updated", nil))
}
