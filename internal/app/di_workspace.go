package app

import (
	"fmt"
	"sync"

	workspaceHTTP "github.com/allisson/tenantvault/internal/workspace/http"
	workspaceRepository "github.com/allisson/tenantvault/internal/workspace/repository"
	workspaceUseCase "github.com/allisson/tenantvault/internal/workspace/usecase"
)

type workspaceComponents struct {
	workspaceUseCase workspaceUseCase.WorkspaceUseCase
	workspaceHandler *workspaceHTTP.WorkspaceHandler

	workspaceUseCaseInit sync.Once
	workspaceHandlerInit sync.Once
}

// WorkspaceUseCase returns the workspace use case over both tenant backends.
func (c *Container) WorkspaceUseCase() (workspaceUseCase.WorkspaceUseCase, error) {
	var err error
	c.workspaceUseCaseInit.Do(func() {
		c.workspaceUseCase, err = c.initWorkspaceUseCase()
		if err != nil {
			c.initErrors["workspaceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceUseCase"]; exists {
		return nil, storedErr
	}
	return c.workspaceUseCase, nil
}

// WorkspaceHandler returns the HTTP handler for projects, tasks and team members.
func (c *Container) WorkspaceHandler() (*workspaceHTTP.WorkspaceHandler, error) {
	var err error
	c.workspaceHandlerInit.Do(func() {
		var useCase workspaceUseCase.WorkspaceUseCase
		useCase, err = c.WorkspaceUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get workspace use case for workspace handler: %w", err)
			c.initErrors["workspaceHandler"] = err
			return
		}
		c.workspaceHandler = workspaceHTTP.NewWorkspaceHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["workspaceHandler"]; exists {
		return nil, storedErr
	}
	return c.workspaceHandler, nil
}

func (c *Container) initWorkspaceUseCase() (workspaceUseCase.WorkspaceUseCase, error) {
	databaseStore, err := c.DatabaseCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get database store for workspace use case: %w", err)
	}

	baasStore, err := c.BaaSCredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get baas store for workspace use case: %w", err)
	}

	postgresBroker, err := c.PostgresBroker()
	if err != nil {
		return nil, fmt.Errorf("failed to get postgres broker for workspace use case: %w", err)
	}

	baasBroker, err := c.BaaSBroker()
	if err != nil {
		return nil, fmt.Errorf("failed to get baas broker for workspace use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for workspace use case: %w", err)
	}

	useCase := workspaceUseCase.NewWorkspaceUseCase(
		databaseStore,
		baasStore,
		workspaceRepository.NewPostgreSQLWorkspaceRepository(postgresBroker),
		workspaceRepository.NewBaaSWorkspaceRepository(baasBroker),
		c.Logger(),
	)
	return workspaceUseCase.NewWorkspaceUseCaseWithMetrics(useCase, businessMetrics), nil
}
