package order_controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsAdil45/HajveryStoreBackend/middleware"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

const checkoutTimeout = 30 * time.Second

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid session"))
		return uuid.Nil, false
	}
	return userID, true
}
