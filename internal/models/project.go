package models

import "time"

// Project is a container for tasks and notes. The slug is derived from the
// name at creation and never changes afterwards.
type Project struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Validate checks field constraints that do not require store access.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Validationf("project name cannot be empty")
	}
	if len(p.Name) > MaxNameLength {
		return Validationf("project name cannot exceed %d characters", MaxNameLength)
	}
	if !IsValidProjectStatus(p.Status) {
		return Validationf("invalid project status: %s", p.Status)
	}
	return nil
}
