package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ViewerIDKey is the context key for the viewer identifier.
const ViewerIDKey = "viewer_id"

// ViewerID gives every caller a stable identifier for unique-view counting:
// the actor's user id when authenticated, otherwise an anonymous cookie that
// persists across requests. Identity verification is not required here, only
// stability.
func ViewerID(cookieName string, maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := Actor(c); actor != nil {
			c.Set(ViewerIDKey, actor.ID)
			c.Next()
			return
		}

		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			id = uuid.New().String()
			c.SetCookie(cookieName, id, int(maxAge.Seconds()), "/", "", false, true)
		}
		c.Set(ViewerIDKey, id)
		c.Next()
	}
}

// Viewer retrieves the viewer identifier from the gin context.
func Viewer(c *gin.Context) string {
	if v, exists := c.Get(ViewerIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
