package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanahberbagi/donation-app/utils"
)

// RequireRoles menolak request jika role user tidak ada di daftar yang
// diizinkan. Dipasang setelah AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("role tidak ditemukan di context"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("Anda tidak memiliki akses"))
		c.Abort()
	}
}
