package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/metrics"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// workspaceUseCaseWithMetrics decorates WorkspaceUseCase with metrics instrumentation.
type workspaceUseCaseWithMetrics struct {
	next    WorkspaceUseCase
	metrics metrics.BusinessMetrics
}

// NewWorkspaceUseCaseWithMetrics wraps a WorkspaceUseCase with metrics recording.
func NewWorkspaceUseCaseWithMetrics(useCase WorkspaceUseCase, m metrics.BusinessMetrics) WorkspaceUseCase {
	return &workspaceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (w *workspaceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, w.metrics, "workspace", operation, start, err)
}

// ListProjects records metrics for project list operations.
func (w *workspaceUseCaseWithMetrics) ListProjects(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Project, error) {
	start := time.Now()
	projects, err := w.next.ListProjects(ctx, tenant, offset, limit)
	w.record(ctx, "project_list", start, err)
	return projects, err
}

// CreateProject records metrics for project create operations.
func (w *workspaceUseCaseWithMetrics) CreateProject(
	ctx context.Context,
	tenant authDomain.TenantID,
	project *workspaceDomain.Project,
) (*workspaceDomain.Project, error) {
	start := time.Now()
	created, err := w.next.CreateProject(ctx, tenant, project)
	w.record(ctx, "project_create", start, err)
	return created, err
}

// ListTasks records metrics for task list operations.
func (w *workspaceUseCaseWithMetrics) ListTasks(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Task, error) {
	start := time.Now()
	tasks, err := w.next.ListTasks(ctx, tenant, offset, limit)
	w.record(ctx, "task_list", start, err)
	return tasks, err
}

// CreateTask records metrics for task create operations.
func (w *workspaceUseCaseWithMetrics) CreateTask(
	ctx context.Context,
	tenant authDomain.TenantID,
	task *workspaceDomain.Task,
) (*workspaceDomain.Task, error) {
	start := time.Now()
	created, err := w.next.CreateTask(ctx, tenant, task)
	w.record(ctx, "task_create", start, err)
	return created, err
}

// ListTeamMembers records metrics for team member list operations.
func (w *workspaceUseCaseWithMetrics) ListTeamMembers(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.TeamMember, error) {
	start := time.Now()
	members, err := w.next.ListTeamMembers(ctx, tenant, offset, limit)
	w.record(ctx, "team_list", start, err)
	return members, err
}

// CreateTeamMember records metrics for team member create operations.
func (w *workspaceUseCaseWithMetrics) CreateTeamMember(
	ctx context.Context,
	tenant authDomain.TenantID,
	member *workspaceDomain.TeamMember,
) (*workspaceDomain.TeamMember, error) {
	start := time.Now()
	created, err := w.next.CreateTeamMember(ctx, tenant, member)
	w.record(ctx, "team_create", start, err)
	return created, err
}
