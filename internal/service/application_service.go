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

// ApplicationService runs the writer-application flow: any authenticated user
// may apply, admins resolve, and acceptance promotes the applicant to
// publisher atomically with the status change.
type ApplicationService struct {
	users        repository.UserRepository
	applications repository.ApplicationRepository
	validator    *validator.Validator
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(
	users repository.UserRepository,
	applications repository.ApplicationRepository,
	v *validator.Validator,
) *ApplicationService {
	return &ApplicationService{
		users:        users,
		applications: applications,
		validator:    v,
	}
}

// Apply files a writer application for the actor.
func (s *ApplicationService) Apply(ctx context.Context, actor *domain.User, in *validator.ApplicationInput) (*domain.Application, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	if err := s.validator.ValidateApplication(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	app := &domain.Application{
		ID:     uuid.New().String(),
		UserID: actor.ID,
		Reason: in.Reason,
		Status: domain.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	logger.InfoContext(ctx, "Writer application filed",
		slog.String("application_id", app.ID),
		slog.String("user_id", actor.ID))
	return app, nil
}

// List returns all applications. Admin only.
func (s *ApplicationService) List(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	if !policy.CanResolveApplication(actor) {
		return nil, domain.ErrForbidden
	}
	return s.applications.List(ctx)
}

// Accept resolves a pending application and promotes the applicant to
// publisher. A second call on the same application fails with
// ErrInvalidTransition and the promotion is never applied twice.
func (s *ApplicationService) Accept(ctx context.Context, actor *domain.User, applicationID, feedback string) (*domain.Application, error) {
	return s.resolve(ctx, actor, applicationID, domain.ApplicationAccepted, feedback)
}

// Reject resolves a pending application without any role side effect.
func (s *ApplicationService) Reject(ctx context.Context, actor *domain.User, applicationID, feedback string) (*domain.Application, error) {
	return s.resolve(ctx, actor, applicationID, domain.ApplicationRejected, feedback)
}

func (s *ApplicationService) resolve(ctx context.Context, actor *domain.User, applicationID string, status domain.ApplicationStatus, feedback string) (*domain.Application, error) {
	if !policy.CanResolveApplication(actor) {
		return nil, domain.ErrForbidden
	}

	if err := s.applications.Resolve(ctx, applicationID, status, actor.ID, feedback); err != nil {
		return nil, err
	}

	app, err := s.applications.Get(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}

	metrics.ApplicationsResolvedTotal.WithLabelValues(string(status)).Inc()
	logger.InfoContext(ctx, "Writer application resolved",
		slog.String("application_id", applicationID),
		slog.String("status", string(status)),
		slog.String("reviewer_id", actor.ID))
	return app, nil
}
