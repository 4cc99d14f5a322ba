package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"student-lens/internal/domain"
	"student-lens/internal/middleware"
	"student-lens/internal/service"
	"student-lens/internal/validator"
)

// ApplicationHandler handles writer-application HTTP requests.
type ApplicationHandler struct {
	applications service.ApplicationServiceInterface
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applications service.ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// ApplicationResponse represents a writer application in the API response.
type ApplicationResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	ReviewedBy *string `json:"reviewed_by,omitempty"`
	Feedback   *string `json:"feedback,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// toApplicationResponse converts a domain.Application to an ApplicationResponse.
func toApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Reason:     a.Reason,
		Status:     string(a.Status),
		ReviewedBy: a.ReviewedBy,
		Feedback:   a.Feedback,
		CreatedAt:  a.CreatedAt.Format(TimeFormat),
	}
}

// CreateApplication handles POST /api/v1/applications.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var in validator.ApplicationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), middleware.Actor(c), &in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// ListApplications handles GET /api/v1/applications - admin only.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.applications.List(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationResponse(&apps[i]))
	}
	c.JSON(http.StatusOK, gin.H{"applications": out})
}

// ResolutionRequest is the payload for accepting or rejecting an application.
type ResolutionRequest struct {
	Feedback string `json:"feedback"`
}

// AcceptApplication handles POST /api/v1/applications/:id/accept.
func (h *ApplicationHandler) AcceptApplication(c *gin.Context) {
	h.resolve(c, h.applications.Accept)
}

// RejectApplication handles POST /api/v1/applications/:id/reject.
func (h *ApplicationHandler) RejectApplication(c *gin.Context) {
	h.resolve(c, h.applications.Reject)
}

func (h *ApplicationHandler) resolve(c *gin.Context, fn func(ctx context.Context, actor *domain.User, id, feedback string) (*domain.Application, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req ResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// feedback is optional, an empty body is fine
		req.Feedback = ""
	}

	app, err := fn(c.Request.Context(), middleware.Actor(c), id, req.Feedback)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toApplicationResponse(app))
}
