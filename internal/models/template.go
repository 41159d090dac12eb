package models

import "time"

// TaskTemplate is a reusable blueprint of subtasks. Applying a template
// instantiates new subtask rows under a target task; the template itself is
// never mutated by application.
type TaskTemplate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubtaskTemplate is one subtask blueprint row owned by a task template.
type SubtaskTemplate struct {
	ID                    string `json:"id"`
	TemplateID            string `json:"template_id"`
	Name                  string `json:"name"`
	Description           string `json:"description,omitempty"`
	RequiredForCompletion bool   `json:"required_for_completion"`
}

func (t *TaskTemplate) Validate() error {
	if t.Name == "" {
		return Validationf("template name cannot be empty")
	}
	if len(t.Name) > MaxNameLength {
		return Validationf("template name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

func (s *SubtaskTemplate) Validate() error {
	if s.Name == "" {
		return Validationf("subtask template name cannot be empty")
	}
	if s.TemplateID == "" {
		return Validationf("subtask template must belong to a template")
	}
	return nil
}
