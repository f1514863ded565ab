package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET,OPTIONS"
	corsAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version"
)

// CORS stamps the permissive cross-origin headers on every response, whether or not
// the caller sent an Origin header. Preflight handling is left to the route handler.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Next()
	}
}
