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

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	workflow service.WorkflowServiceInterface
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(workflow service.WorkflowServiceInterface) *ArticleHandler {
	return &ArticleHandler{workflow: workflow}
}

// ArticleResponse represents an article in the API response.
type ArticleResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Body              string  `json:"body"`
	AuthorID          string  `json:"author_id"`
	Stage             string  `json:"stage"`
	Category          string  `json:"category,omitempty"`
	CategorySuggested *string `json:"category_suggested,omitempty"`
	CategoryFinal     *string `json:"category_final,omitempty"`
	Views             int     `json:"views"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// toArticleResponse converts a domain.Article to an ArticleResponse.
func toArticleResponse(a *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:                a.ID,
		Title:             a.Title,
		Body:              a.Body,
		AuthorID:          a.AuthorID,
		Stage:             string(a.Stage),
		Category:          a.DisplayCategory(),
		CategorySuggested: a.CategorySuggested,
		CategoryFinal:     a.CategoryFinal,
		Views:             a.Views,
		CreatedAt:         a.CreatedAt.Format(TimeFormat),
		UpdatedAt:         a.UpdatedAt.Format(TimeFormat),
	}
}

func toArticleResponses(articles []domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toArticleResponse(&articles[i]))
	}
	return out
}

// CreateArticle handles POST /api/v1/articles - article submission.
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var in validator.SubmitArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.workflow.Submit(c.Request.Context(), middleware.Actor(c), &in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(article))
}

// ListArticles handles GET /api/v1/articles - published articles, optionally
// filtered by category.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	articles, err := h.workflow.ListPublished(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": toArticleResponses(articles)})
}

// ListPending handles GET /api/v1/articles/pending - in-flight articles
// scoped by role.
func (h *ArticleHandler) ListPending(c *gin.Context) {
	articles, err := h.workflow.ListPending(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": toArticleResponses(articles)})
}

// QueuesResponse represents the role-scoped work queues.
type QueuesResponse struct {
	Pending   []ArticleResponse `json:"pending,omitempty"`
	Editing   []ArticleResponse `json:"editing,omitempty"`
	Reviewing []ArticleResponse `json:"reviewing,omitempty"`
	Mine      []ArticleResponse `json:"mine,omitempty"`
}

// GetQueues handles GET /api/v1/articles/queue.
func (h *ArticleHandler) GetQueues(c *gin.Context) {
	queues, err := h.workflow.Queues(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, QueuesResponse{
		Pending:   toArticleResponses(queues.Pending),
		Editing:   toArticleResponses(queues.Editing),
		Reviewing: toArticleResponses(queues.Reviewing),
		Mine:      toArticleResponses(queues.Mine),
	})
}

// GetArticle handles GET /api/v1/articles/:id - opens an article, recording
// a unique view when it is published.
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	article, _, err := h.workflow.View(c.Request.Context(), middleware.Actor(c), middleware.Viewer(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// UpdateArticle handles PUT /api/v1/articles/:id.
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var in validator.EditArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.workflow.Edit(c.Request.Context(), middleware.Actor(c), id, &in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// TransitionRequest is the payload for a stage transition.
type TransitionRequest struct {
	Action string `json:"action"`
}

// TransitionArticle handles POST /api/v1/articles/:id/transitions.
func (h *ArticleHandler) TransitionArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action is required"})
		return
	}

	article, err := h.workflow.Transition(c.Request.Context(), middleware.Actor(c), id, service.Action(req.Action))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(article))
}

// DeleteArticle handles DELETE /api/v1/articles/:id.
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.workflow.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
