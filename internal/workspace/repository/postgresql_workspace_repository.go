// Package repository implements workspace storage in the tenant's own backend: its
// PostgreSQL database through the connection broker, or its BaaS project over REST.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/broker"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// TenantDatabase runs fn against a tenant connection that is closed when fn returns.
// *broker.PostgresBroker implements it.
type TenantDatabase interface {
	WithHandle(ctx context.Context, tenant authDomain.TenantID, fn func(ctx context.Context, q broker.Querier) error) error
}

// PostgreSQLWorkspaceRepository implements the workspace Repository on the tenant's
// PostgreSQL database. Each call opens and releases its own handle.
type PostgreSQLWorkspaceRepository struct {
	db TenantDatabase
}

// NewPostgreSQLWorkspaceRepository creates a new PostgreSQL workspace repository.
func NewPostgreSQLWorkspaceRepository(db TenantDatabase) *PostgreSQLWorkspaceRepository {
	return &PostgreSQLWorkspaceRepository{db: db}
}

const projectColumns = `id::text, user_id, name, COALESCE(description, ''), status, priority,
	COALESCE(budget, 0)::float8, due_date, created_at`

// ListProjects returns the tenant's projects, newest first.
func (p *PostgreSQLWorkspaceRepository) ListProjects(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var projects []*workspaceDomain.Project
	err := p.db.WithHandle(ctx, tenant, func(ctx context.Context, q broker.Querier) error {
		rows, err := q.Query(ctx, query, tenant.String(), limit, offset)
		if err != nil {
			return err
		}
		projects, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*workspaceDomain.Project, error) {
			return scanProject(row)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProject inserts a project and returns the stored row.
func (p *PostgreSQLWorkspaceRepository) CreateProject(
	ctx context.Context,
	project *workspaceDomain.Project,
) (*workspaceDomain.Project, error) {
	query := `INSERT INTO projects (user_id, name, description, status, priority, budget, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + projectColumns

	var created *workspaceDomain.Project
	err := p.db.WithHandle(ctx, project.UserID, func(ctx context.Context, q broker.Querier) error {
		var err error
		created, err = scanProject(q.QueryRow(ctx, query,
			project.UserID.String(),
			project.Name,
			project.Description,
			project.Status,
			project.Priority,
			project.Budget,
			project.DueDate,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

const taskColumns = `id::text, user_id, project_id::text, title, COALESCE(description, ''), status, priority,
	due_date, created_at`

// ListTasks returns the tenant's tasks, newest first.
func (p *PostgreSQLWorkspaceRepository) ListTasks(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var tasks []*workspaceDomain.Task
	err := p.db.WithHandle(ctx, tenant, func(ctx context.Context, q broker.Querier) error {
		rows, err := q.Query(ctx, query, tenant.String(), limit, offset)
		if err != nil {
			return err
		}
		tasks, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*workspaceDomain.Task, error) {
			return scanTask(row)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts a task and returns the stored row.
func (p *PostgreSQLWorkspaceRepository) CreateTask(
	ctx context.Context,
	task *workspaceDomain.Task,
) (*workspaceDomain.Task, error) {
	query := `INSERT INTO tasks (user_id, project_id, title, description, status, priority, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + taskColumns

	var created *workspaceDomain.Task
	err := p.db.WithHandle(ctx, task.UserID, func(ctx context.Context, q broker.Querier) error {
		var err error
		created, err = scanTask(q.QueryRow(ctx, query,
			task.UserID.String(),
			task.ProjectID,
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.DueDate,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

const memberColumns = `id::text, user_id, name, COALESCE(role, ''), email, COALESCE(workload, 0)::int,
	status, created_at`

// ListTeamMembers returns the tenant's team members, newest first.
func (p *PostgreSQLWorkspaceRepository) ListTeamMembers(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.TeamMember, error) {
	query := `SELECT ` + memberColumns + `
		FROM team_members WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var members []*workspaceDomain.TeamMember
	err := p.db.WithHandle(ctx, tenant, func(ctx context.Context, q broker.Querier) error {
		rows, err := q.Query(ctx, query, tenant.String(), limit, offset)
		if err != nil {
			return err
		}
		members, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*workspaceDomain.TeamMember, error) {
			return scanTeamMember(row)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// CreateTeamMember inserts a team member and returns the stored row.
func (p *PostgreSQLWorkspaceRepository) CreateTeamMember(
	ctx context.Context,
	member *workspaceDomain.TeamMember,
) (*workspaceDomain.TeamMember, error) {
	query := `INSERT INTO team_members (user_id, name, role, email, workload, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + memberColumns

	var created *workspaceDomain.TeamMember
	err := p.db.WithHandle(ctx, member.UserID, func(ctx context.Context, q broker.Querier) error {
		var err error
		created, err = scanTeamMember(q.QueryRow(ctx, query,
			member.UserID.String(),
			member.Name,
			member.Role,
			member.Email,
			member.Workload,
			member.Status,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return created, nil
}

func scanProject(row pgx.Row) (*workspaceDomain.Project, error) {
	var project workspaceDomain.Project
	var userID string
	err := row.Scan(
		&project.ID,
		&userID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.Priority,
		&project.Budget,
		&project.DueDate,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, noRows(err)
	}
	project.UserID = authDomain.TenantID(userID)
	return &project, nil
}

func scanTask(row pgx.Row) (*workspaceDomain.Task, error) {
	var task workspaceDomain.Task
	var userID string
	err := row.Scan(
		&task.ID,
		&userID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, noRows(err)
	}
	task.UserID = authDomain.TenantID(userID)
	return &task, nil
}

func scanTeamMember(row pgx.Row) (*workspaceDomain.TeamMember, error) {
	var member workspaceDomain.TeamMember
	var userID string
	err := row.Scan(
		&member.ID,
		&userID,
		&member.Name,
		&member.Role,
		&member.Email,
		&member.Workload,
		&member.Status,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, noRows(err)
	}
	member.UserID = authDomain.TenantID(userID)
	return &member, nil
}

// noRows maps an empty RETURNING to a query failure; the insert was rejected by a rule or policy.
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: no row returned", broker.ErrQueryFailed)
	}
	return err
}
