package service

import (
	"context"

	"student-lens/internal/domain"
	"student-lens/internal/validator"
)

// WorkflowServiceInterface defines the article workflow operations.
type WorkflowServiceInterface interface {
	Submit(ctx context.Context, actor *domain.User, in *validator.SubmitArticleInput) (*domain.Article, error)
	View(ctx context.Context, actor *domain.User, viewerID, articleID string) (*domain.Article, bool, error)
	Edit(ctx context.Context, actor *domain.User, articleID string, in *validator.EditArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, actor *domain.User, articleID string) error
	Transition(ctx context.Context, actor *domain.User, articleID string, action Action) (*domain.Article, error)
	ListPublished(ctx context.Context, category string) ([]domain.Article, error)
	ListPending(ctx context.Context, actor *domain.User) ([]domain.Article, error)
	Queues(ctx context.Context, actor *domain.User) (*Queues, error)
}

// ApplicationServiceInterface defines the writer application operations.
type ApplicationServiceInterface interface {
	Apply(ctx context.Context, actor *domain.User, in *validator.ApplicationInput) (*domain.Application, error)
	List(ctx context.Context, actor *domain.User) ([]domain.Application, error)
	Accept(ctx context.Context, actor *domain.User, applicationID, feedback string) (*domain.Application, error)
	Reject(ctx context.Context, actor *domain.User, applicationID, feedback string) (*domain.Application, error)
}

// UserServiceInterface defines the user directory operations.
type UserServiceInterface interface {
	Register(ctx context.Context, in *validator.SignupInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, actor *domain.User) ([]domain.User, error)
	SetRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) (*domain.User, error)
}
