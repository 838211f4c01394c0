package auth

import (
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID int64
	Email  string
	Role   model.Role
}

func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}

func GetIdentity(c *gin.Context) (*Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := val.(*Identity)
	return id, ok
}

// GetUserID returns the caller's user id, or 0 outside a guarded route.
func GetUserID(c *gin.Context) int64 {
	if id, ok := GetIdentity(c); ok {
		return id.UserID
	}
	return 0
}
