package middleware

import (
	"github.com/gin-gonic/gin"

	"student-lens/internal/domain"
	"student-lens/internal/repository"
)

const (
	// ActorHeader carries the caller's user id. Verification is the
	// responsibility of the deployment's auth layer; this service trusts the
	// id and resolves it against the user directory.
	ActorHeader = "X-User-ID"
	// ActorKey is the context key for the resolved actor
	ActorKey = "actor"
)

// Identity resolves the X-User-ID header to a directory user and stores it in
// the request context. Requests without the header, or with an unknown id,
// proceed as anonymous.
func Identity(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(ActorHeader)
		if id != "" {
			user, err := users.Get(c.Request.Context(), id)
			if err == nil && user != nil {
				c.Set(ActorKey, user)
			}
		}
		c.Next()
	}
}

// Actor retrieves the resolved actor from the gin context. Nil means
// anonymous.
func Actor(c *gin.Context) *domain.User {
	if v, exists := c.Get(ActorKey); exists {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
