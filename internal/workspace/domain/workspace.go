// Package domain defines the tenant workspace records (projects, tasks and team members)
// that live in each tenant's own backend.
package domain

import (
	"time"

	authDomain "github.com/allisson/tenantvault/internal/auth/domain"
)

// Default field values applied when a create request leaves them empty.
const (
	DefaultProjectStatus   = "planning"
	DefaultProjectPriority = "medium"
	DefaultTaskStatus      = "todo"
	DefaultTaskPriority    = "medium"
	DefaultMemberRole      = "Developer"
	DefaultMemberStatus    = "available"
)

// Backend names which tenant store served a workspace operation.
type Backend string

const (
	// BackendDatabase is the tenant's own PostgreSQL database.
	BackendDatabase Backend = "database"

	// BackendBaaS is the tenant's BaaS project, reached over its REST API.
	BackendBaaS Backend = "baas"
)

// Project is a row of the tenant's projects table. The json tags match the column names
// so the same type decodes REST responses.
type Project struct {
	ID          string              `json:"id,omitempty"`
	UserID      authDomain.TenantID `json:"user_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Budget      float64             `json:"budget"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedAt   time.Time           `json:"created_at,omitzero"`
}

// ApplyDefaults fills empty status and priority.
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = DefaultProjectStatus
	}
	if p.Priority == "" {
		p.Priority = DefaultProjectPriority
	}
}

// Task is a row of the tenant's tasks table.
type Task struct {
	ID          string              `json:"id,omitempty"`
	UserID      authDomain.TenantID `json:"user_id"`
	ProjectID   *string             `json:"project_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedAt   time.Time           `json:"created_at,omitzero"`
}

// ApplyDefaults fills empty status and priority.
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = DefaultTaskStatus
	}
	if t.Priority == "" {
		t.Priority = DefaultTaskPriority
	}
}

// TeamMember is a row of the tenant's team_members table.
type TeamMember struct {
	ID        string              `json:"id,omitempty"`
	UserID    authDomain.TenantID `json:"user_id"`
	Name      string              `json:"name"`
	Role      string              `json:"role"`
	Email     string              `json:"email"`
	Workload  int                 `json:"workload"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at,omitzero"`
}

// ApplyDefaults fills empty role and status.
func (m *TeamMember) ApplyDefaults() {
	if m.Role == "" {
		m.Role = DefaultMemberRole
	}
	if m.Status == "" {
		m.Status = DefaultMemberStatus
	}
}
