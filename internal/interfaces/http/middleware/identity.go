package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/id"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

// RequireUser reads the caller's user SID forwarded by the gateway in
// X-User-ID and stores it under constants.ContextKeyUserSID.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userSID := c.GetHeader(constants.HeaderXUserID)
		if userSID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing "+constants.HeaderXUserID+" header")
			c.Abort()
			return
		}

		if err := id.ValidatePrefix(userSID, id.PrefixUser); err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid "+constants.HeaderXUserID+" header")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserSID, userSID)
		c.Next()
	}
}
