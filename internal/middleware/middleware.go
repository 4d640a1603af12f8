package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS applies the service's fixed cross-origin header set. OPTIONS
// requests fall through so the generate handler can answer the preflight
// with its own 200 body.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")

		c.Next()
	}
}
