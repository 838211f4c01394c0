package auth

import (
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
)

type Guard struct {
	tokens *TokenManager
}

func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Require authenticates the bearer token and checks the caller's role
// against op before the handler runs.
func (g *Guard) Require(op Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			resp.Error(c, apperror.Unauthorized("Missing bearer token"))
			return
		}

		claims, err := g.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			resp.Error(c, apperror.Unauthorized("Invalid or expired token"))
			return
		}

		if !Allowed(claims.Role, op) {
			resp.Error(c, apperror.Forbidden("Insufficient permissions"))
			return
		}

		SetIdentity(c, &Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}
