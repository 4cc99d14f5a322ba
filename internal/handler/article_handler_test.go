package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"student-lens/internal/domain"
	"student-lens/internal/middleware"
	"student-lens/internal/mocks"
	"student-lens/internal/service"
)

const (
	testArticleID = "11111111-1111-1111-1111-111111111111"
	testUserID    = "22222222-2222-2222-2222-222222222222"
)

// withActor injects a resolved actor and viewer id the way the identity
// middleware chain would.
func withActor(actor *domain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ActorKey, actor)
			c.Set(middleware.ViewerIDKey, actor.ID)
		} else {
			c.Set(middleware.ViewerIDKey, "anon-viewer")
		}
		c.Next()
	}
}

func setupArticleRouter(workflow *mocks.MockWorkflowService, actor *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewArticleHandler(workflow)

	router := gin.New()
	router.Use(withActor(actor))
	router.POST("/articles", h.CreateArticle)
	router.GET("/articles", h.ListArticles)
	router.GET("/articles/pending", h.ListPending)
	router.GET("/articles/queue", h.GetQueues)
	router.GET("/articles/:id", h.GetArticle)
	router.PUT("/articles/:id", h.UpdateArticle)
	router.POST("/articles/:id/transitions", h.TransitionArticle)
	router.DELETE("/articles/:id", h.DeleteArticle)
	return router
}

func TestCreateArticle(t *testing.T) {
	t.Run("publisher submits", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		actor := &domain.User{ID: testUserID, Role: domain.RolePublisher}
		router := setupArticleRouter(workflow, actor)

		workflow.On("Submit", mock.Anything, actor, mock.AnythingOfType("*validator.SubmitArticleInput")).
			Return(&domain.Article{ID: testArticleID, Title: "T", AuthorID: testUserID, Stage: domain.StagePending}, nil)

		body, _ := json.Marshal(map[string]string{"title": "T", "body": "B"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp ArticleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testArticleID, resp.ID)
		assert.Equal(t, "pending", resp.Stage)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		router := setupArticleRouter(workflow, nil)

		workflow.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrForbidden)

		body, _ := json.Marshal(map[string]string{"title": "T", "body": "B"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		router := setupArticleRouter(workflow, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader([]byte("{not json")))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		workflow.AssertNotCalled(t, "Submit")
	})
}

func TestListArticles(t *testing.T) {
	workflow := new(mocks.MockWorkflowService)
	router := setupArticleRouter(workflow, nil)

	workflow.On("ListPublished", mock.Anything, "Science").
		Return([]domain.Article{{ID: testArticleID, Stage: domain.StagePublished}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/articles?category=Science", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Articles []ArticleResponse `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Articles, 1)
}

func TestGetArticle(t *testing.T) {
	t.Run("passes viewer id through", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		router := setupArticleRouter(workflow, nil)

		workflow.On("View", mock.Anything, (*domain.User)(nil), "anon-viewer", testArticleID).
			Return(&domain.Article{ID: testArticleID, Stage: domain.StagePublished, Views: 5}, true, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/articles/"+testArticleID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		workflow.AssertExpectations(t)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		router := setupArticleRouter(workflow, nil)

		workflow.On("View", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, false, domain.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/articles/"+testArticleID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		router := setupArticleRouter(workflow, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/articles/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		workflow.AssertNotCalled(t, "View")
	})
}

func TestUpdateArticle(t *testing.T) {
	workflow := new(mocks.MockWorkflowService)
	actor := &domain.User{ID: testUserID, Role: domain.RoleEditor}
	router := setupArticleRouter(workflow, actor)

	workflow.On("Edit", mock.Anything, actor, testArticleID, mock.AnythingOfType("*validator.EditArticleInput")).
		Return(&domain.Article{ID: testArticleID, Title: "New"}, nil)

	body, _ := json.Marshal(map[string]string{"title": "New"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/articles/"+testArticleID, bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ArticleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "New", resp.Title)
}

func TestTransitionArticle(t *testing.T) {
	t.Run("applies action", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		actor := &domain.User{ID: testUserID, Role: domain.RoleReviewer}
		router := setupArticleRouter(workflow, actor)

		workflow.On("Transition", mock.Anything, actor, testArticleID, service.ActionPublish).
			Return(&domain.Article{ID: testArticleID, Stage: domain.StagePublished}, nil)

		body, _ := json.Marshal(map[string]string{"action": "publish"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles/"+testArticleID+"/transitions", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp ArticleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "published", resp.Stage)
	})

	t.Run("invalid transition maps to 409", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		actor := &domain.User{ID: testUserID, Role: domain.RoleAdmin}
		router := setupArticleRouter(workflow, actor)

		workflow.On("Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.ErrInvalidTransition)

		body, _ := json.Marshal(map[string]string{"action": "publish"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles/"+testArticleID+"/transitions", bytes.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing action maps to 400", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		router := setupArticleRouter(workflow, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/articles/"+testArticleID+"/transitions", bytes.NewReader([]byte("{}")))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		workflow.AssertNotCalled(t, "Transition")
	})
}

func TestDeleteArticle(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		actor := &domain.User{ID: testUserID, Role: domain.RoleAdmin}
		router := setupArticleRouter(workflow, actor)

		workflow.On("Delete", mock.Anything, actor, testArticleID).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/articles/"+testArticleID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		workflow := new(mocks.MockWorkflowService)
		actor := &domain.User{ID: testUserID, Role: domain.RoleUser}
		router := setupArticleRouter(workflow, actor)

		workflow.On("Delete", mock.Anything, actor, testArticleID).Return(domain.ErrForbidden)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/articles/"+testArticleID, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGetQueues(t *testing.T) {
	workflow := new(mocks.MockWorkflowService)
	actor := &domain.User{ID: testUserID, Role: domain.RoleAdmin}
	router := setupArticleRouter(workflow, actor)

	workflow.On("Queues", mock.Anything, actor).Return(&service.Queues{
		Pending:   []domain.Article{{ID: testArticleID, Stage: domain.StagePending}},
		Reviewing: []domain.Article{{ID: testUserID, Stage: domain.StageReviewing}},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/articles/queue", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp QueuesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Pending, 1)
	assert.Len(t, resp.Reviewing, 1)
	assert.Empty(t, resp.Editing)
}

func TestListPendingHandler(t *testing.T) {
	workflow := new(mocks.MockWorkflowService)
	actor := &domain.User{ID: testUserID, Role: domain.RoleEditor}
	router := setupArticleRouter(workflow, actor)

	workflow.On("ListPending", mock.Anything, actor).
		Return([]domain.Article{{ID: testArticleID, Stage: domain.StagePending}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/articles/pending", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
