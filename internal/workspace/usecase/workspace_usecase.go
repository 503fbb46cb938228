package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	vaultUseCase "github.com/allisson/tenantvault/internal/vault/usecase"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// existenceChecker is the part of a credential store used to pick a backend.
type existenceChecker interface {
	Exists(ctx context.Context, tenant authDomain.TenantID) (bool, error)
}

// workspaceUseCase routes each call to the tenant's database when one is stored, and to
// its BaaS project otherwise.
type workspaceUseCase struct {
	databaseStore existenceChecker
	baasStore     existenceChecker
	databaseRepo  Repository
	baasRepo      Repository
	logger        *slog.Logger
}

// NewWorkspaceUseCase creates a new WorkspaceUseCase.
func NewWorkspaceUseCase(
	databaseStore vaultUseCase.DatabaseCredentialStore,
	baasStore vaultUseCase.BaaSCredentialStore,
	databaseRepo Repository,
	baasRepo Repository,
	logger *slog.Logger,
) WorkspaceUseCase {
	return &workspaceUseCase{
		databaseStore: databaseStore,
		baasStore:     baasStore,
		databaseRepo:  databaseRepo,
		baasRepo:      baasRepo,
		logger:        logger,
	}
}

// backend picks the repository for tenant. Only existence is checked here; the broker
// loads and decrypts the secret when the repository runs.
func (w *workspaceUseCase) backend(ctx context.Context, tenant authDomain.TenantID) (Repository, error) {
	if tenant.IsZero() {
		return nil, authDomain.ErrUnauthenticated
	}

	hasDatabase, err := w.databaseStore.Exists(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if hasDatabase {
		w.logDebug(tenant, workspaceDomain.BackendDatabase)
		return w.databaseRepo, nil
	}

	hasBaaS, err := w.baasStore.Exists(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if hasBaaS {
		w.logDebug(tenant, workspaceDomain.BackendBaaS)
		return w.baasRepo, nil
	}

	return nil, workspaceDomain.ErrBackendNotConfigured
}

func (w *workspaceUseCase) logDebug(tenant authDomain.TenantID, backend workspaceDomain.Backend) {
	w.logger.Debug("workspace backend selected",
		slog.String("tenant", tenant.Redacted()),
		slog.String("backend", string(backend)),
	)
}

func (w *workspaceUseCase) ListProjects(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Project, error) {
	repo, err := w.backend(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return repo.ListProjects(ctx, tenant, offset, limit)
}

func (w *workspaceUseCase) CreateProject(
	ctx context.Context,
	tenant authDomain.TenantID,
	project *workspaceDomain.Project,
) (*workspaceDomain.Project, error) {
	repo, err := w.backend(ctx, tenant)
	if err != nil {
		return nil, err
	}

	project.UserID = tenant
	project.ApplyDefaults()
	return repo.CreateProject(ctx, project)
}

func (w *workspaceUseCase) ListTasks(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.Task, error) {
	repo, err := w.backend(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return repo.ListTasks(ctx, tenant, offset, limit)
}

func (w *workspaceUseCase) CreateTask(
	ctx context.Context,
	tenant authDomain.TenantID,
	task *workspaceDomain.Task,
) (*workspaceDomain.Task, error) {
	repo, err := w.backend(ctx, tenant)
	if err != nil {
		return nil, err
	}

	task.UserID = tenant
	task.ApplyDefaults()
	return repo.CreateTask(ctx, task)
}

func (w *workspaceUseCase) ListTeamMembers(
	ctx context.Context,
	tenant authDomain.TenantID,
	offset, limit int,
) ([]*workspaceDomain.TeamMember, error) {
	repo, err := w.backend(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return repo.ListTeamMembers(ctx, tenant, offset, limit)
}

func (w *workspaceUseCase) CreateTeamMember(
	ctx context.Context,
	tenant authDomain.TenantID,
	member *workspaceDomain.TeamMember,
) (*workspaceDomain.TeamMember, error) {
	repo, err := w.backend(ctx, tenant)
	if err != nil {
		return nil, err
	}

	member.UserID = tenant
	member.ApplyDefaults()
	return repo.CreateTeamMember(ctx, member)
}
