// Package mocks provides mock implementations of the workspace use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

// ListProjects mocks the ListProjects method.
func (m *MockRepository) ListProjects(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Project, error) {
	args := m.Called(ctx, tenant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.Project), args.Error(1)
}

// CreateProject mocks the CreateProject method.
func (m *MockRepository) CreateProject(
	ctx context.Context,
	project *workspaceDomain.Project,
) (*workspaceDomain.Project, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Project), args.Error(1)
}

// ListTasks mocks the ListTasks method.
func (m *MockRepository) ListTasks(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Task, error) {
	args := m.Called(ctx, tenant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.Task), args.Error(1)
}

// CreateTask mocks the CreateTask method.
func (m *MockRepository) CreateTask(ctx context.Context, task *workspaceDomain.Task) (*workspaceDomain.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Task), args.Error(1)
}

// ListTeamMembers mocks the ListTeamMembers method.
func (m *MockRepository) ListTeamMembers(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.TeamMember, error) {
	args := m.Called(ctx, tenant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.TeamMember), args.Error(1)
}

// CreateTeamMember mocks the CreateTeamMember method.
func (m *MockRepository) CreateTeamMember(
	ctx context.Context,
	member *workspaceDomain.TeamMember,
) (*workspaceDomain.TeamMember, error) {
	args := m.Called(ctx, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.TeamMember), args.Error(1)
}

// MockWorkspaceUseCase is a mock implementation of WorkspaceUseCase.
type MockWorkspaceUseCase struct {
	mock.Mock
}

// ListProjects mocks the ListProjects method.
func (m *MockWorkspaceUseCase) ListProjects(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Project, error) {
	args := m.Called(ctx, tenant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.Project), args.Error(1)
}

// CreateProject mocks the CreateProject method.
func (m *MockWorkspaceUseCase) CreateProject(
	ctx context.Context,
	tenant authDomain.TenantID,
	project *workspaceDomain.Project,
) (*workspaceDomain.Project, error) {
	args := m.Called(ctx, tenant, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Project), args.Error(1)
}

// ListTasks mocks the ListTasks method.
func (m *MockWorkspaceUseCase) ListTasks(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Task, error) {
	args := m.Called(ctx, tenant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.Task), args.Error(1)
}

// CreateTask mocks the CreateTask method.
func (m *MockWorkspaceUseCase) CreateTask(
	ctx context.Context,
	tenant authDomain.TenantID,
	task *workspaceDomain.Task,
) (*workspaceDomain.Task, error) {
	args := m.Called(ctx, tenant, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.Task), args.Error(1)
}

// ListTeamMembers mocks the ListTeamMembers method.
func (m *MockWorkspaceUseCase) ListTeamMembers(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.TeamMember, error) {
	args := m.Called(ctx, tenant, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workspaceDomain.TeamMember), args.Error(1)
}

// CreateTeamMember mocks the CreateTeamMember method.
func (m *MockWorkspaceUseCase) CreateTeamMember(
	ctx context.Context,
	tenant authDomain.TenantID,
	member *workspaceDomain.TeamMember,
) (*workspaceDomain.TeamMember, error) {
	args := m.Called(ctx, tenant, member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspaceDomain.TeamMember), args.Error(1)
}
