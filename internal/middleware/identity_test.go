package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"student-lens/internal/domain"
	"student-lens/internal/mocks"
)

func TestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(users *mocks.MockUserRepository, header string) *domain.User {
		router := gin.New()
		router.Use(Identity(users))

		var actor *domain.User
		router.GET("/", func(c *gin.Context) {
			actor = Actor(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(ActorHeader, header)
		}
		router.ServeHTTP(w, req)
		return actor
	}

	t.Run("resolves a known user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("Get", mock.Anything, "u-1").
			Return(&domain.User{ID: "u-1", Role: domain.RoleEditor}, nil)

		actor := run(users, "u-1")

		assert.NotNil(t, actor)
		assert.Equal(t, domain.RoleEditor, actor.Role)
	})

	t.Run("missing header means anonymous", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		actor := run(users, "")
		assert.Nil(t, actor)
		users.AssertNotCalled(t, "Get")
	})

	t.Run("unknown id means anonymous", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("Get", mock.Anything, "ghost").Return(nil, nil)

		actor := run(users, "ghost")
		assert.Nil(t, actor)
	})

	t.Run("lookup failure means anonymous", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("Get", mock.Anything, "u-1").Return(nil, errors.New("db down"))

		actor := run(users, "u-1")
		assert.Nil(t, actor)
	})
}
