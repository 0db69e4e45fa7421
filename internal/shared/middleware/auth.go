package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts-backend/pkg/token"
)

// Auth validates a bearer token when one is presented. Requests without a
// token pass through untouched; token enforcement stays opt-in until every
// client carries one.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		value := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Validate(value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, []string{"invalid token"})
			return
		}
		c.Set("client", claims.Subject)
		c.Next()
	}
}
