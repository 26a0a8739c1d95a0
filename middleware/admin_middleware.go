package middleware

import (
	"log"
	"net/http"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware gates a route group to users with the admin role.
// Must run after AuthMiddleware. The role is re-read from the database so a
// demoted admin loses access as soon as their row changes, not when their
// token expires.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
			c.Abort()
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		var user models.User
		if err := config.StoreGorm.WithContext(ctx).
			Select("id, role").
			Where("id = ?", userID).
			First(&user).Error; err != nil {
			log.Printf("[auth] failed to fetch user role: %v", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - user not found"))
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Access denied. Admins only."))
			c.Abort()
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
