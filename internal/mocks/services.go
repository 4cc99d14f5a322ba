package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"student-lens/internal/domain"
	"student-lens/internal/service"
	"student-lens/internal/validator"
)

// MockWorkflowService is a mock implementation of
// service.WorkflowServiceInterface.
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Submit(ctx context.Context, actor *domain.User, in *validator.SubmitArticleInput) (*domain.Article, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockWorkflowService) View(ctx context.Context, actor *domain.User, viewerID, articleID string) (*domain.Article, bool, error) {
	args := m.Called(ctx, actor, viewerID, articleID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Article), args.Bool(1), args.Error(2)
}

func (m *MockWorkflowService) Edit(ctx context.Context, actor *domain.User, articleID string, in *validator.EditArticleInput) (*domain.Article, error) {
	args := m.Called(ctx, actor, articleID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockWorkflowService) Delete(ctx context.Context, actor *domain.User, articleID string) error {
	args := m.Called(ctx, actor, articleID)
	return args.Error(0)
}

func (m *MockWorkflowService) Transition(ctx context.Context, actor *domain.User, articleID string, action service.Action) (*domain.Article, error) {
	args := m.Called(ctx, actor, articleID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockWorkflowService) ListPublished(ctx context.Context, category string) ([]domain.Article, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockWorkflowService) ListPending(ctx context.Context, actor *domain.User) ([]domain.Article, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockWorkflowService) Queues(ctx context.Context, actor *domain.User) (*service.Queues, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Queues), args.Error(1)
}

// MockApplicationService is a mock implementation of
// service.ApplicationServiceInterface.
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Apply(ctx context.Context, actor *domain.User, in *validator.ApplicationInput) (*domain.Application, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationService) Accept(ctx context.Context, actor *domain.User, applicationID, feedback string) (*domain.Application, error) {
	args := m.Called(ctx, actor, applicationID, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationService) Reject(ctx context.Context, actor *domain.User, applicationID, feedback string) (*domain.Application, error) {
	args := m.Called(ctx, actor, applicationID, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

// MockUserService is a mock implementation of service.UserServiceInterface.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, in *validator.SignupInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) SetRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
