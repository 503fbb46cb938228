// Package dto provides data transfer objects for the workspace HTTP handlers.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/tenantvault/internal/validation"
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// CreateProjectRequest contains the fields of a new project.
type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Budget      float64    `json:"budget"`
	DueDate     *time.Time `json:"dueDate"`
}

// Validate checks that the project has a name and a non-negative budget.
func (r *CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.RuneLength(1, 255)),
		validation.Field(&r.Budget, validation.Min(0.0)),
	)
}

// ToDomain maps the request to a project row.
func (r *CreateProjectRequest) ToDomain() *workspaceDomain.Project {
	return &workspaceDomain.Project{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Budget:      r.Budget,
		DueDate:     r.DueDate,
	}
}

// CreateTaskRequest contains the fields of a new task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	ProjectID   *string    `json:"projectId"`
}

// Validate checks that the task has a title.
func (r *CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, customValidation.NotBlank, validation.RuneLength(1, 255)),
	)
}

// ToDomain maps the request to a task row.
func (r *CreateTaskRequest) ToDomain() *workspaceDomain.Task {
	return &workspaceDomain.Task{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

// CreateTeamMemberRequest contains the fields of a new team member.
type CreateTeamMemberRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Workload int    `json:"workload"`
	Status   string `json:"status"`
}

// Validate checks that the member has a name and a valid email.
func (r *CreateTeamMemberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Workload, validation.Min(0)),
	)
}

// ToDomain maps the request to a team member row.
func (r *CreateTeamMemberRequest) ToDomain() *workspaceDomain.TeamMember {
	return &workspaceDomain.TeamMember{
		Name:     r.Name,
		Role:     r.Role,
		Email:    r.Email,
		Workload: r.Workload,
		Status:   r.Status,
	}
}
