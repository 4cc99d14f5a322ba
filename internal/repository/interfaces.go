package repository

import (
	"context"

	"student-lens/internal/domain"
)

// ArticleFilter narrows article listings. Zero values mean "no filter";
// Category matches the final category with fallback to the suggested one.
type ArticleFilter struct {
	Stages   []domain.Stage
	AuthorID string
	Category string
}

// UserRepository defines methods for user directory access.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, id string, role domain.Role) error
}

// ArticleRepository defines methods for article store access. UpdateStage is
// a compare-and-swap on the stage column; RecordView atomically adds a viewer
// to the article's viewer set and bumps both counters, reporting whether the
// viewer was new.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Get(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	UpdateStage(ctx context.Context, id string, from, to domain.Stage) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	RecordView(ctx context.Context, articleID, viewerID string) (bool, error)
}

// ApplicationRepository defines methods for writer application access.
// Resolve moves a pending application to a terminal status; acceptance also
// promotes the applicant to publisher inside the same transaction.
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
	Get(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
	Resolve(ctx context.Context, id string, status domain.ApplicationStatus, reviewerID, feedback string) error
}
