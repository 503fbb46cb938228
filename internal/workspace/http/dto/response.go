package dto

import (
	workspaceDomain "github.com/allisson/tenantvault/internal/workspace/domain"
)

// NotConfiguredMessage accompanies empty lists for tenants without a backend.
const NotConfiguredMessage = "Database not configured"

// ListProjectsResponse wraps a page of projects.
type ListProjectsResponse struct {
	Projects []*workspaceDomain.Project `json:"projects"`
	Message  string                     `json:"message,omitempty"`
}

// ListTasksResponse wraps a page of tasks.
type ListTasksResponse struct {
	Tasks   []*workspaceDomain.Task `json:"tasks"`
	Message string                  `json:"message,omitempty"`
}

// ListTeamResponse wraps a page of team members.
type ListTeamResponse struct {
	Team    []*workspaceDomain.TeamMember `json:"team"`
	Message string                        `json:"message,omitempty"`
}

// ProjectResponse wraps a created project.
type ProjectResponse struct {
	Project *workspaceDomain.Project `json:"project"`
	Message string                   `json:"message"`
}

// TaskResponse wraps a created task.
type TaskResponse struct {
	Task    *workspaceDomain.Task `json:"task"`
	Message string                `json:"message"`
}

// TeamMemberResponse wraps a created team member.
type TeamMemberResponse struct {
	Member  *workspaceDomain.TeamMember `json:"member"`
	Message string                      `json:"message"`
}

// nonNil keeps empty pages encoded as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// MapProjectsToListResponse converts a page of projects to a response.
func MapProjectsToListResponse(projects []*workspaceDomain.Project) ListProjectsResponse {
	return ListProjectsResponse{Projects: nonNil(projects)}
}

// MapTasksToListResponse converts a page of tasks to a response.
func MapTasksToListResponse(tasks []*workspaceDomain.Task) ListTasksResponse {
	return ListTasksResponse{Tasks: nonNil(tasks)}
}

// MapTeamToListResponse converts a page of team members to a response.
func MapTeamToListResponse(members []*workspaceDomain.TeamMember) ListTeamResponse {
	return ListTeamResponse{Team: nonNil(members)}
}
