package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"student-lens/internal/domain"
	"student-lens/internal/logger"
	"student-lens/internal/metrics"
	"student-lens/internal/policy"
	"student-lens/internal/repository"
	"student-lens/internal/validator"
)

// Action is a transition trigger requested by a caller.
type Action string

const (
	ActionMoveToReview Action = "move_to_review"
	ActionSendBack     Action = "send_back"
	ActionPublish      Action = "publish"
	ActionReject       Action = "reject"
	ActionArchive      Action = "archive"
)

// actionTargets maps each trigger to the stage it moves an article into. The
// current stage decides whether the resulting edge exists at all.
var actionTargets = map[Action]domain.Stage{
	ActionMoveToReview: domain.StageReviewing,
	ActionSendBack:     domain.StageEditing,
	ActionPublish:      domain.StagePublished,
	ActionReject:       domain.StageArchived,
	ActionArchive:      domain.StageArchived,
}

// Queues groups articles by the queues visible to a role. Only the fields
// relevant to the actor's role are populated.
type Queues struct {
	Pending   []domain.Article `json:"pending,omitempty"`
	Editing   []domain.Article `json:"editing,omitempty"`
	Reviewing []domain.Article `json:"reviewing,omitempty"`
	Mine      []domain.Article `json:"mine,omitempty"`
}

// WorkflowService drives articles through the editorial pipeline: submission,
// edits, stage transitions, unique-view recording, and role-scoped listings.
// All authorization decisions are delegated to the policy package.
type WorkflowService struct {
	users     repository.UserRepository
	articles  repository.ArticleRepository
	validator *validator.Validator
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(
	users repository.UserRepository,
	articles repository.ArticleRepository,
	v *validator.Validator,
) *WorkflowService {
	return &WorkflowService{
		users:     users,
		articles:  articles,
		validator: v,
	}
}

// Submit creates a new article in the pending stage. Only publishers and
// admins may submit.
func (s *WorkflowService) Submit(ctx context.Context, actor *domain.User, in *validator.SubmitArticleInput) (*domain.Article, error) {
	if !policy.CanSubmit(actor) {
		metrics.SubmissionsTotal.WithLabelValues("forbidden").Inc()
		return nil, domain.ErrForbidden
	}
	if err := s.validator.ValidateSubmission(in); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	article := &domain.Article{
		ID:                uuid.New().String(),
		Title:             in.Title,
		Body:              in.Body,
		AuthorID:          actor.ID,
		Stage:             domain.StagePending,
		CategorySuggested: in.CategorySuggested,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	logger.InfoContext(ctx, "Article submitted",
		slog.String("article_id", article.ID),
		slog.String("author_id", actor.ID))
	return article, nil
}

// View returns the article and records a unique view when it is published.
// The returned bool reports whether a new view was counted; re-opening by the
// same viewer never changes the counters.
func (s *WorkflowService) View(ctx context.Context, actor *domain.User, viewerID, articleID string) (*domain.Article, bool, error) {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, false, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, false, domain.ErrNotFound
	}
	if !policy.CanView(actor, article) {
		return nil, false, domain.ErrForbidden
	}

	if article.Stage != domain.StagePublished || viewerID == "" {
		return article, false, nil
	}

	recorded, err := s.articles.RecordView(ctx, articleID, viewerID)
	if err != nil {
		return nil, false, fmt.Errorf("record view: %w", err)
	}
	if recorded {
		article.Views++
		metrics.ViewsRecordedTotal.Inc()
	}
	return article, recorded, nil
}

// Edit updates title, body, and categories under the edit rules: staff edit
// any article regardless of stage, publishers and users only their own, and
// only staff may set the final category.
func (s *WorkflowService) Edit(ctx context.Context, actor *domain.User, articleID string, in *validator.EditArticleInput) (*domain.Article, error) {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanEdit(actor, article) {
		return nil, domain.ErrForbidden
	}
	if in.CategoryFinal != nil && !policy.CanSetFinalCategory(actor) {
		return nil, domain.ErrForbidden
	}
	if err := s.validator.ValidateEdit(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Body != nil {
		article.Body = *in.Body
	}
	if in.CategorySuggested != nil {
		article.CategorySuggested = in.CategorySuggested
	}
	if in.CategoryFinal != nil {
		article.CategoryFinal = in.CategoryFinal
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

// Delete removes an article. Admins and reviewers may remove any article;
// the author only while it is not published or archived.
func (s *WorkflowService) Delete(ctx context.Context, actor *domain.User, articleID string) error {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return domain.ErrNotFound
	}
	if !policy.CanDelete(actor, article) {
		return domain.ErrForbidden
	}
	if err := s.articles.Delete(ctx, articleID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	logger.InfoContext(ctx, "Article deleted",
		slog.String("article_id", articleID),
		slog.String("actor_id", actor.ID))
	return nil
}

// Transition applies a stage-change trigger. An edge missing from the
// transition table fails with ErrInvalidTransition and leaves the article
// unchanged; a known edge with an unauthorized role fails with ErrForbidden.
// The stage update itself is a compare-and-swap, so of two racing callers
// exactly one wins.
func (s *WorkflowService) Transition(ctx context.Context, actor *domain.User, articleID string, action Action) (*domain.Article, error) {
	target, ok := actionTargets[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidTransition, action)
	}

	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}

	from := article.Stage
	if !policy.ValidTransition(from, target) {
		metrics.ObserveTransition(string(from), string(target), "invalid")
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, from, target)
	}
	if !policy.CanTransition(actor, from, target) {
		metrics.ObserveTransition(string(from), string(target), "forbidden")
		return nil, domain.ErrForbidden
	}

	if err := s.articles.UpdateStage(ctx, articleID, from, target); err != nil {
		metrics.ObserveTransition(string(from), string(target), "conflict")
		return nil, err
	}

	article.Stage = target
	metrics.ObserveTransition(string(from), string(target), "applied")
	logger.InfoContext(ctx, "Article stage changed",
		slog.String("article_id", articleID),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
		slog.String("actor_id", actor.ID))
	return article, nil
}

// ListPublished returns published articles, newest first, optionally filtered
// by category (final category with fallback to the suggested one).
func (s *WorkflowService) ListPublished(ctx context.Context, category string) ([]domain.Article, error) {
	return s.articles.List(ctx, repository.ArticleFilter{
		Stages:   []domain.Stage{domain.StagePublished},
		Category: category,
	})
}

// nonTerminalStages are the stages of articles still moving through the
// pipeline.
var nonTerminalStages = []domain.Stage{domain.StagePending, domain.StageEditing, domain.StageReviewing}

// ListPending returns the in-flight articles visible to the actor: staff see
// all of them, publishers only their own, everyone else none.
func (s *WorkflowService) ListPending(ctx context.Context, actor *domain.User) ([]domain.Article, error) {
	if actor == nil || actor.Role == domain.RoleUser {
		return []domain.Article{}, nil
	}

	filter := repository.ArticleFilter{Stages: nonTerminalStages}
	if actor.Role == domain.RolePublisher {
		filter.AuthorID = actor.ID
	}
	return s.articles.List(ctx, filter)
}

// Queues returns the role-scoped work queues: editors get the editing queue,
// reviewers the reviewing queue, admins all three non-terminal queues, and
// publishers their own articles across all stages.
func (s *WorkflowService) Queues(ctx context.Context, actor *domain.User) (*Queues, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}

	q := &Queues{}
	switch actor.Role {
	case domain.RoleEditor:
		editing, err := s.articles.List(ctx, repository.ArticleFilter{Stages: []domain.Stage{domain.StageEditing}})
		if err != nil {
			return nil, err
		}
		q.Editing = editing
	case domain.RoleReviewer:
		reviewing, err := s.articles.List(ctx, repository.ArticleFilter{Stages: []domain.Stage{domain.StageReviewing}})
		if err != nil {
			return nil, err
		}
		q.Reviewing = reviewing
	case domain.RoleAdmin:
		for _, stage := range nonTerminalStages {
			list, err := s.articles.List(ctx, repository.ArticleFilter{Stages: []domain.Stage{stage}})
			if err != nil {
				return nil, err
			}
			switch stage {
			case domain.StagePending:
				q.Pending = list
			case domain.StageEditing:
				q.Editing = list
			case domain.StageReviewing:
				q.Reviewing = list
			}
		}
	case domain.RolePublisher:
		mine, err := s.articles.List(ctx, repository.ArticleFilter{AuthorID: actor.ID})
		if err != nil {
			return nil, err
		}
		q.Mine = mine
	default:
		return nil, domain.ErrForbidden
	}
	return q, nil
}
