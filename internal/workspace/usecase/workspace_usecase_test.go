package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
	vaultMocks "github.com/allisson/tenantvault/internal/vault/usecase/mocks"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
	"github.com/allisson/tenantvault/internal/workspace/usecase/mocks"
)

const testTenant = authDomain.TenantID("0d9e8f7a-6b5c-4d3e-9f2a-1b0c9d8e7f6a")

type workspaceFixture struct {
	useCase       WorkspaceUseCase
	databaseStore *vaultMocks.MockCredentialStore[vaultDomain.DatabaseConnection]
	baasStore     *vaultMocks.MockCredentialStore[vaultDomain.BaaSCredentials]
	databaseRepo  *mocks.MockRepository
	baasRepo      *mocks.MockRepository
}

func newWorkspaceFixture(t *testing.T) *workspaceFixture {
	t.Helper()

	f := &workspaceFixture{
		databaseStore: &vaultMocks.MockCredentialStore[vaultDomain.DatabaseConnection]{},
		baasStore:     &vaultMocks.MockCredentialStore[vaultDomain.BaaSCredentials]{},
		databaseRepo:  &mocks.MockRepository{},
		baasRepo:      &mocks.MockRepository{},
	}
	f.useCase = NewWorkspaceUseCase(
		f.databaseStore,
		f.baasStore,
		f.databaseRepo,
		f.baasRepo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	t.Cleanup(func() {
		f.databaseStore.AssertExpectations(t)
		f.baasStore.AssertExpectations(t)
		f.databaseRepo.AssertExpectations(t)
		f.baasRepo.AssertExpectations(t)
	})
	return f
}

func TestWorkspaceUseCase_BackendSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("DatabasePreferred", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		projects := []*workspaceDomain.Project{{ID: "1", Name: "alpha"}}
		f.databaseStore.On("Exists", ctx, testTenant).Return(true, nil).Once()
		f.databaseRepo.On("ListProjects", ctx, testTenant, 0, 50).Return(projects, nil).Once()

		got, err := f.useCase.ListProjects(ctx, testTenant, 0, 50)

		require.NoError(t, err)
		assert.Equal(t, projects, got)
		f.baasStore.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("BaaSFallback", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		tasks := []*workspaceDomain.Task{{ID: "7", Title: "ship"}}
		f.databaseStore.On("Exists", ctx, testTenant).Return(false, nil).Once()
		f.baasStore.On("Exists", ctx, testTenant).Return(true, nil).Once()
		f.baasRepo.On("ListTasks", ctx, testTenant, 10, 20).Return(tasks, nil).Once()

		got, err := f.useCase.ListTasks(ctx, testTenant, 10, 20)

		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		f.databaseStore.On("Exists", ctx, testTenant).Return(false, nil).Once()
		f.baasStore.On("Exists", ctx, testTenant).Return(false, nil).Once()

		_, err := f.useCase.ListTeamMembers(ctx, testTenant, 0, 50)

		assert.ErrorIs(t, err, workspaceDomain.ErrBackendNotConfigured)
	})

	t.Run("StoreErrorPropagates", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		storeErr := errors.New("redis unavailable")
		f.databaseStore.On("Exists", ctx, testTenant).Return(false, storeErr).Once()

		_, err := f.useCase.ListProjects(ctx, testTenant, 0, 50)

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("ZeroTenant", func(t *testing.T) {
		f := newWorkspaceFixture(t)

		_, err := f.useCase.ListProjects(ctx, "", 0, 50)

		assert.ErrorIs(t, err, authDomain.ErrUnauthenticated)
	})
}

func TestWorkspaceUseCase_CreateAppliesTenantAndDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("Project", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		f.databaseStore.On("Exists", ctx, testTenant).Return(true, nil).Once()
		f.databaseRepo.On("CreateProject", ctx, mock.MatchedBy(func(p *workspaceDomain.Project) bool {
			return p.UserID == testTenant &&
				p.Status == workspaceDomain.DefaultProjectStatus &&
				p.Priority == workspaceDomain.DefaultProjectPriority
		})).Return(&workspaceDomain.Project{ID: "1", Name: "alpha"}, nil).Once()

		created, err := f.useCase.CreateProject(ctx, testTenant, &workspaceDomain.Project{
			Name:   "alpha",
			UserID: "someone-else",
		})

		require.NoError(t, err)
		assert.Equal(t, "1", created.ID)
	})

	t.Run("Task", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		f.databaseStore.On("Exists", ctx, testTenant).Return(false, nil).Once()
		f.baasStore.On("Exists", ctx, testTenant).Return(true, nil).Once()
		f.baasRepo.On("CreateTask", ctx, mock.MatchedBy(func(task *workspaceDomain.Task) bool {
			return task.UserID == testTenant && task.Status == workspaceDomain.DefaultTaskStatus
		})).Return(&workspaceDomain.Task{ID: "2", Title: "ship"}, nil).Once()

		_, err := f.useCase.CreateTask(ctx, testTenant, &workspaceDomain.Task{Title: "ship"})

		require.NoError(t, err)
	})

	t.Run("TeamMember", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		f.databaseStore.On("Exists", ctx, testTenant).Return(true, nil).Once()
		f.databaseRepo.On("CreateTeamMember", ctx, mock.MatchedBy(func(m *workspaceDomain.TeamMember) bool {
			return m.UserID == testTenant &&
				m.Role == workspaceDomain.DefaultMemberRole &&
				m.Status == workspaceDomain.DefaultMemberStatus
		})).Return(&workspaceDomain.TeamMember{ID: "3", Name: "Ada"}, nil).Once()

		_, err := f.useCase.CreateTeamMember(ctx, testTenant, &workspaceDomain.TeamMember{
			Name:  "Ada",
			Email: "ada@example.com",
		})

		require.NoError(t, err)
	})

	t.Run("NotConfiguredNeverWrites", func(t *testing.T) {
		f := newWorkspaceFixture(t)
		f.databaseStore.On("Exists", ctx, testTenant).Return(false, nil).Once()
		f.baasStore.On("Exists", ctx, testTenant).Return(false, nil).Once()

		_, err := f.useCase.CreateProject(ctx, testTenant, &workspaceDomain.Project{Name: "alpha"})

		assert.ErrorIs(t, err, workspaceDomain.ErrBackendNotConfigured)
		f.databaseRepo.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
		f.baasRepo.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
	})
}
