package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"student-lens/internal/domain"
	"student-lens/internal/middleware"
	"student-lens/internal/service"
	"student-lens/internal/validator"
)

// UserHandler handles user directory HTTP requests.
type UserHandler struct {
	users service.UserServiceInterface
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserServiceInterface) *UserHandler {
	return &UserHandler{users: users}
}

// UserResponse represents a user in the API response.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	TotalViews int    `json:"total_views"`
	CreatedAt  string `json:"created_at"`
}

// toUserResponse converts a domain.User to a UserResponse.
func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		TotalViews: u.TotalViews,
		CreatedAt:  u.CreatedAt.Format(TimeFormat),
	}
}

// CreateUser handles POST /api/v1/users - signup. New users always get the
// "user" role.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var in validator.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), &in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser handles GET /api/v1/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// ListUsers handles GET /api/v1/users - admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// SetRole handles PUT /api/v1/users/:id/role - admin only.
func (h *UserHandler) SetRole(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var in validator.RoleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), middleware.Actor(c), id, domain.Role(in.Role))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
