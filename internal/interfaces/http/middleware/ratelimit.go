package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/infrastructure/ratelimit"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

// PerUserRateLimit limits requests per caller, keyed by the user SID set by
// RequireUser (client IP otherwise). Requests pass when the limiter errors.
func PerUserRateLimit(limiter ratelimit.RateLimiter, scope string, config ratelimit.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString(constants.ContextKeyUserSID)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}

		allowed, err := limiter.Allow(c.Request.Context(), scope+":"+subject, config)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"scope", scope,
				"error", err,
			)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
