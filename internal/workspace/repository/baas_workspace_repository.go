package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/broker"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// TenantBaaS runs fn with a client bound to the tenant's BaaS project.
// *broker.BaaSBroker implements it.
type TenantBaaS interface {
	WithHandle(
		ctx context.Context,
		tenant authDomain.TenantID,
		fn func(ctx context.Context, client *broker.BaaSClient) error,
	) error
}

// BaaSWorkspaceRepository implements the workspace Repository on the tenant's BaaS project
// through its REST interface.
type BaaSWorkspaceRepository struct {
	baas TenantBaaS
}

// NewBaaSWorkspaceRepository creates a new BaaS workspace repository.
func NewBaaSWorkspaceRepository(baas TenantBaaS) *BaaSWorkspaceRepository {
	return &BaaSWorkspaceRepository{baas: baas}
}

// ListProjects returns the tenant's projects, newest first.
func (b *BaaSWorkspaceRepository) ListProjects(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Project, error) {
	projects := make([]*workspaceDomain.Project, 0)
	if err := b.list(ctx, tenant, "projects", offset, limit, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProject inserts a project and returns the stored row.
func (b *BaaSWorkspaceRepository) CreateProject(
	ctx context.Context,
	project *workspaceDomain.Project,
) (*workspaceDomain.Project, error) {
	var created []*workspaceDomain.Project
	if err := b.insert(ctx, project.UserID, "projects", project, &created); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("failed to create project: %w: no row returned", broker.ErrQueryFailed)
	}
	return created[0], nil
}

// ListTasks returns the tenant's tasks, newest first.
func (b *BaaSWorkspaceRepository) ListTasks(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Task, error) {
	tasks := make([]*workspaceDomain.Task, 0)
	if err := b.list(ctx, tenant, "tasks", offset, limit, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a task and returns the stored row.
func (b *BaaSWorkspaceRepository) CreateTask(
	ctx context.Context,
	task *workspaceDomain.Task,
) (*workspaceDomain.Task, error) {
	var created []*workspaceDomain.Task
	if err := b.insert(ctx, task.UserID, "tasks", task, &created); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("failed to create task: %w: no row returned", broker.ErrQueryFailed)
	}
	return created[0], nil
}

// ListTeamMembers returns the tenant's team members, newest first.
func (b *BaaSWorkspaceRepository) ListTeamMembers(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.TeamMember, error) {
	members := make([]*workspaceDomain.TeamMember, 0)
	if err := b.list(ctx, tenant, "team_members", offset, limit, &members); err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// CreateTeamMember inserts a team member and returns the stored row.
func (b *BaaSWorkspaceRepository) CreateTeamMember(
	ctx context.Context,
	member *workspaceDomain.TeamMember,
) (*workspaceDomain.TeamMember, error) {
	var created []*workspaceDomain.TeamMember
	if err := b.insert(ctx, member.UserID, "team_members", member, &created); err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("failed to create team member: %w: no row returned", broker.ErrQueryFailed)
	}
	return created[0], nil
}

func (b *BaaSWorkspaceRepository) list(
	ctx context.Context,
	tenant authDomain.TenantID,
	table string,
	offset, limit int,
	out any,
) error {
	filters := url.Values{
		"user_id": {"eq." + tenant.String()},
		"order":   {"created_at.desc"},
		"offset":  {strconv.Itoa(offset)},
		"limit":   {strconv.Itoa(limit)},
	}
	return b.baas.WithHandle(ctx, tenant, func(ctx context.Context, client *broker.BaaSClient) error {
		return client.Select(ctx, table, filters, out)
	})
}

func (b *BaaSWorkspaceRepository) insert(
	ctx context.Context,
	tenant authDomain.TenantID,
	table string,
	row, out any,
) error {
	return b.baas.WithHandle(ctx, tenant, func(ctx context.Context, client *broker.BaaSClient) error {
		return client.Insert(ctx, table, row, out)
	})
}
