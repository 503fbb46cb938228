package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	"github.com/allisson/tenantvault/internal/broker"
	"github.com/allisson/tenantvault/internal/testutil"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

const testTenant = authDomain.TenantID("3c2b1a09-8f7e-4d6c-b5a4-938271605f4e")

// poolDatabase runs every operation on a shared pool, standing in for the broker.
type poolDatabase struct {
	pool  *pgxpool.Pool
	calls int
}

func (p *poolDatabase) WithHandle(
	ctx context.Context,
	_ authDomain.TenantID,
	fn func(ctx context.Context, q broker.Querier) error,
) error {
	p.calls++
	return fn(ctx, p.pool)
}

// failingDatabase fails every operation before fn runs.
type failingDatabase struct {
	err error
}

func (f failingDatabase) WithHandle(
	_ context.Context,
	_ authDomain.TenantID,
	_ func(ctx context.Context, q broker.Querier) error,
) error {
	return f.err
}

const workspaceSchema = `
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS projects;
DROP TABLE IF EXISTS team_members;
CREATE TABLE projects (
	id SERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	status TEXT,
	priority TEXT,
	budget NUMERIC,
	due_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE tasks (
	id SERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	project_id TEXT,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT,
	priority TEXT,
	due_date TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE team_members (
	id SERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	role TEXT,
	email TEXT NOT NULL,
	workload INTEGER,
	status TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

func setupTenantDatabase(t *testing.T) *poolDatabase {
	t.Helper()
	testutil.SkipIfNoPostgres(t)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, testutil.GetPostgresTestDSN())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, workspaceSchema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS tasks, projects, team_members")
	})

	return &poolDatabase{pool: pool}
}

func TestPostgreSQLWorkspaceRepository_Projects(t *testing.T) {
	db := setupTenantDatabase(t)
	repo := NewPostgreSQLWorkspaceRepository(db)
	ctx := context.Background()

	due := time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)
	first, err := repo.CreateProject(ctx, &workspaceDomain.Project{
		UserID:   testTenant,
		Name:     "alpha",
		Status:   "planning",
		Priority: "medium",
		Budget:   1500.5,
		DueDate:  &due,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, testTenant, first.UserID)
	assert.Equal(t, 1500.5, first.Budget)
	require.NotNil(t, first.DueDate)
	assert.True(t, due.Equal(*first.DueDate))

	_, err = repo.CreateProject(ctx, &workspaceDomain.Project{
		UserID: "token:other@example.com",
		Name:   "foreign",
	})
	require.NoError(t, err)

	projects, err := repo.ListProjects(ctx, testTenant, 0, 50)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "alpha", projects[0].Name)
	assert.Empty(t, projects[0].Description)
}

func TestPostgreSQLWorkspaceRepository_TasksAndMembers(t *testing.T) {
	db := setupTenantDatabase(t)
	repo := NewPostgreSQLWorkspaceRepository(db)
	ctx := context.Background()

	project, err := repo.CreateProject(ctx, &workspaceDomain.Project{UserID: testTenant, Name: "alpha"})
	require.NoError(t, err)

	task, err := repo.CreateTask(ctx, &workspaceDomain.Task{
		UserID:    testTenant,
		ProjectID: &project.ID,
		Title:     "ship",
		Status:    "todo",
		Priority:  "high",
	})
	require.NoError(t, err)
	require.NotNil(t, task.ProjectID)
	assert.Equal(t, project.ID, *task.ProjectID)

	orphan, err := repo.CreateTask(ctx, &workspaceDomain.Task{UserID: testTenant, Title: "triage"})
	require.NoError(t, err)
	assert.Nil(t, orphan.ProjectID)

	tasks, err := repo.ListTasks(ctx, testTenant, 0, 1)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	member, err := repo.CreateTeamMember(ctx, &workspaceDomain.TeamMember{
		UserID:   testTenant,
		Name:     "Ada",
		Role:     "Developer",
		Email:    "ada@example.com",
		Workload: 3,
		Status:   "available",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, member.Workload)

	members, err := repo.ListTeamMembers(ctx, testTenant, 0, 50)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "ada@example.com", members[0].Email)
}

func TestPostgreSQLWorkspaceRepository_SQLErrorIsQueryFailure(t *testing.T) {
	db := setupTenantDatabase(t)
	_, err := db.pool.Exec(context.Background(), "DROP TABLE tasks")
	require.NoError(t, err)

	repo := NewPostgreSQLWorkspaceRepository(db)
	_, err = repo.ListTasks(context.Background(), testTenant, 0, 50)

	assert.Error(t, err)
}

func TestPostgreSQLWorkspaceRepository_BrokerErrorPropagates(t *testing.T) {
	ctx := context.Background()
	brokerErr := errors.New("connection failed: server unreachable")
	repo := NewPostgreSQLWorkspaceRepository(failingDatabase{err: brokerErr})

	_, err := repo.ListProjects(ctx, testTenant, 0, 50)
	assert.ErrorIs(t, err, brokerErr)

	_, err = repo.CreateProject(ctx, &workspaceDomain.Project{UserID: testTenant, Name: "alpha"})
	assert.ErrorIs(t, err, brokerErr)

	_, err = repo.ListTasks(ctx, testTenant, 0, 50)
	assert.ErrorIs(t, err, brokerErr)

	_, err = repo.CreateTeamMember(ctx, &workspaceDomain.TeamMember{UserID: testTenant, Name: "Ada"})
	assert.ErrorIs(t, err, brokerErr)
}
