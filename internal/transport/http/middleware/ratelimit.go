package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "go-circle-api/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "too many requests"))
	}
}
