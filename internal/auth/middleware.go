package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rowestoli/QuackLog/internal/config"
	"github.com/rowestoli/QuackLog/internal/response"
)

// AuthMiddleware resolves the Bearer token to a user and injects it into the
// request context. Requests without a valid signed-in user are rejected with
// 401 before any handler runs.
func AuthMiddleware(provider Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			var user interface{}
			var err error
			if cfg.Env == "development" {
				user, err = provider.ValidateTokenLocal(token)
			} else {
				user, err = provider.ValidateTokenRemote(c.Request.Context(), token)
			}
			if err == nil {
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
	}
}
