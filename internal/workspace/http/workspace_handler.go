// Package http provides the HTTP handlers for tenant projects, tasks and team members.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
	authHTTP "github.com/allisson/tenantvault/internal/auth/http"
	apperrors "github.com/allisson/tenantvault/internal/errors"
	"github.com/allisson/tenantvault/internal/httputil"
	customValidation "github.com/allisson/tenantvault/internal/validation"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
	"github.com/allisson/tenantvault/internal/workspace/http/dto"
	workspaceUseCase "github.com/allisson/tenantvault/internal/workspace/usecase"
)

// WorkspaceHandler handles the workspace endpoints. List endpoints answer with an empty
// page while the tenant has no backend; create endpoints answer 400 not_configured.
type WorkspaceHandler struct {
	useCase workspaceUseCase.WorkspaceUseCase
	logger  *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(useCase workspaceUseCase.WorkspaceUseCase, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// ListProjectsHandler returns a page of the tenant's projects, newest first.
// GET /v1/projects?offset=0&limit=50
func (h *WorkspaceHandler) ListProjectsHandler(c *gin.Context) {
	tenant, offset, limit, ok := h.listParams(c)
	if !ok {
		return
	}

	projects, err := h.useCase.ListProjects(c.Request.Context(), tenant, offset, limit)
	if err != nil {
		if apperrors.Is(err, workspaceDomain.ErrBackendNotConfigured) {
			c.JSON(http.StatusOK, dto.ListProjectsResponse{
				Projects: []*workspaceDomain.Project{},
				Message:  dto.NotConfiguredMessage,
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProjectsToListResponse(projects))
}

// CreateProjectHandler creates a project for the tenant.
// POST /v1/projects - Returns 201 Created.
func (h *WorkspaceHandler) CreateProjectHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.bind(c, &req) {
		return
	}

	project, err := h.useCase.CreateProject(c.Request.Context(), tenant, req.ToDomain())
	if err != nil {
		h.handleCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ProjectResponse{Project: project, Message: "Project created"})
}

// ListTasksHandler returns a page of the tenant's tasks, newest first.
// GET /v1/tasks?offset=0&limit=50
func (h *WorkspaceHandler) ListTasksHandler(c *gin.Context) {
	tenant, offset, limit, ok := h.listParams(c)
	if !ok {
		return
	}

	tasks, err := h.useCase.ListTasks(c.Request.Context(), tenant, offset, limit)
	if err != nil {
		if apperrors.Is(err, workspaceDomain.ErrBackendNotConfigured) {
			c.JSON(http.StatusOK, dto.ListTasksResponse{
				Tasks:   []*workspaceDomain.Task{},
				Message: dto.NotConfiguredMessage,
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTasksToListResponse(tasks))
}

// CreateTaskHandler creates a task for the tenant.
// POST /v1/tasks - Returns 201 Created.
func (h *WorkspaceHandler) CreateTaskHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.bind(c, &req) {
		return
	}

	task, err := h.useCase.CreateTask(c.Request.Context(), tenant, req.ToDomain())
	if err != nil {
		h.handleCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{Task: task, Message: "Task created"})
}

// ListTeamHandler returns a page of the tenant's team members, newest first.
// GET /v1/team?offset=0&limit=50
func (h *WorkspaceHandler) ListTeamHandler(c *gin.Context) {
	tenant, offset, limit, ok := h.listParams(c)
	if !ok {
		return
	}

	members, err := h.useCase.ListTeamMembers(c.Request.Context(), tenant, offset, limit)
	if err != nil {
		if apperrors.Is(err, workspaceDomain.ErrBackendNotConfigured) {
			c.JSON(http.StatusOK, dto.ListTeamResponse{
				Team:    []*workspaceDomain.TeamMember{},
				Message: dto.NotConfiguredMessage,
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTeamToListResponse(members))
}

// CreateTeamMemberHandler adds a team member for the tenant.
// POST /v1/team - Returns 201 Created.
func (h *WorkspaceHandler) CreateTeamMemberHandler(c *gin.Context) {
	tenant, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.CreateTeamMemberRequest
	if !h.bind(c, &req) {
		return
	}

	member, err := h.useCase.CreateTeamMember(c.Request.Context(), tenant, req.ToDomain())
	if err != nil {
		h.handleCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TeamMemberResponse{Member: member, Message: "Team member added"})
}

type validatable interface {
	Validate() error
}

func (h *WorkspaceHandler) bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}

func (h *WorkspaceHandler) handleCreateError(c *gin.Context, err error) {
	if apperrors.Is(err, workspaceDomain.ErrBackendNotConfigured) {
		c.JSON(http.StatusBadRequest, httputil.ErrorResponse{
			Error:   "not_configured",
			Message: dto.NotConfiguredMessage,
		})
		return
	}
	httputil.HandleErrorGin(c, err, h.logger)
}

func (h *WorkspaceHandler) listParams(c *gin.Context) (authDomain.TenantID, int, int, bool) {
	tenant, ok := h.tenant(c)
	if !ok {
		return "", 0, 0, false
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return "", 0, 0, false
	}
	return tenant, offset, limit, true
}

func (h *WorkspaceHandler) tenant(c *gin.Context) (authDomain.TenantID, bool) {
	tenant, ok := authHTTP.GetTenant(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrUnauthenticated, h.logger)
		return "", false
	}
	return tenant, true
}
