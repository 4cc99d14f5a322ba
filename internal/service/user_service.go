package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"student-lens/internal/domain"
	"student-lens/internal/logger"
	"student-lens/internal/policy"
	"student-lens/internal/repository"
	"student-lens/internal/validator"
)

// UserService manages the user directory: signup and admin role edits.
type UserService struct {
	users     repository.UserRepository
	validator *validator.Validator
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, v *validator.Validator) *UserService {
	return &UserService{users: users, validator: v}
}

// Register creates a new user. The role is always "user"; promotion happens
// only through an admin role edit or an accepted writer application.
func (s *UserService) Register(ctx context.Context, in *validator.SignupInput) (*domain.User, error) {
	if err := s.validator.ValidateSignup(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user := &domain.User{
		ID:    uuid.New().String(),
		Name:  in.Name,
		Email: in.Email,
		Role:  domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.InfoContext(ctx, "User registered", slog.String("user_id", user.ID))
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// List returns all users. Admin only.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

// SetRole changes a user's role. Admin only.
func (s *UserService) SetRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) (*domain.User, error) {
	if !policy.CanManageUsers(actor) {
		return nil, domain.ErrForbidden
	}
	if !domain.IsValidRole(string(role)) {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, role)
	}

	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	logger.InfoContext(ctx, "User role changed",
		slog.String("user_id", userID),
		slog.String("role", string(role)),
		slog.String("actor_id", actor.ID))
	return user, nil
}
