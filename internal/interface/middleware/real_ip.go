package middleware

import (
	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP under "real_ip" for rate limiting and access logs.
// It relies on c.ClientIP, so forwarding headers only count when the engine's
// trusted proxies (or trusted platform) vouch for them.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
