package middleware

import "github.com/gin-gonic/gin"

// CheckedIn guards table and order routes. It is a deliberate no-op stub:
// table session verification is out of scope, so every request is admitted.
func CheckedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
