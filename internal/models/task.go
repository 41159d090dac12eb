package models

import "time"

// Task is a unit of work owned by exactly one project. The slug is unique
// within the owning project and survives renames and project moves.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validate checks field constraints that do not require store access.
func (t *Task) Validate() error {
	if t.Name == "" {
		return Validationf("task name cannot be empty")
	}
	if len(t.Name) > MaxNameLength {
		return Validationf("task name cannot exceed %d characters", MaxNameLength)
	}
	if t.ProjectID == "" {
		return Validationf("task must be associated with a project")
	}
	if !IsValidTaskStatus(t.Status) {
		return Validationf("invalid task status: %s", t.Status)
	}
	return nil
}
