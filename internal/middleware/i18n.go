// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handles values like "hi-IN,hi;q=0.9,en;q=0.8"
		c.Set("lang", i18n.Normalize(c.GetHeader("Accept-Language")))
		c.Next()
	}
}
