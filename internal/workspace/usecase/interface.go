// Package usecase implements the tenant workspace operations on top of whichever backend
// the tenant configured.
package usecase

import (
	"context"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// Repository reads and writes workspace rows in one tenant backend. Every method scopes
// its rows to tenant.
type Repository interface {
	ListProjects(ctx context.Context, tenant authDomain.TenantID, offset, limit int) ([]*workspaceDomain.Project, error)
	CreateProject(ctx context.Context, project *workspaceDomain.Project) (*workspaceDomain.Project, error)
	ListTasks(ctx context.Context, tenant authDomain.TenantID, offset, limit int) ([]*workspaceDomain.Task, error)
	CreateTask(ctx context.Context, task *workspaceDomain.Task) (*workspaceDomain.Task, error)
	ListTeamMembers(
		ctx context.Context,
		tenant authDomain.TenantID,
		offset, limit int,
	) ([]*workspaceDomain.TeamMember, error)
	CreateTeamMember(ctx context.Context, member *workspaceDomain.TeamMember) (*workspaceDomain.TeamMember, error)
}

// WorkspaceUseCase serves workspace data for a tenant. Without a configured backend every
// method returns workspaceDomain.ErrBackendNotConfigured.
type WorkspaceUseCase interface {
	ListProjects(ctx context.Context, tenant authDomain.TenantID, offset, limit int) ([]*workspaceDomain.Project, error)
	CreateProject(
		ctx context.Context,
		tenant authDomain.TenantID,
		project *workspaceDomain.Project,
	) (*workspaceDomain.Project, error)
	ListTasks(ctx context.Context, tenant authDomain.TenantID, offset, limit int) ([]*workspaceDomain.Task, error)
	CreateTask(ctx context.Context, tenant authDomain.TenantID, task *workspaceDomain.Task) (*workspaceDomain.Task, error)
	ListTeamMembers(
		ctx context.Context,
		tenant authDomain.TenantID,
		offset, limit int,
	) ([]*workspaceDomain.TeamMember, error)
	CreateTeamMember(
		ctx context.Context,
		tenant authDomain.TenantID,
		member *workspaceDomain.TeamMember,
	) (*workspaceDomain.TeamMember, error)
}
