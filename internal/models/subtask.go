package models

import "time"

// Subtask is a checklist item under a task. Subtasks flagged
// required_for_completion gate the owning task's COMPLETED transition.
type Subtask struct {
	ID                    string     `json:"id"`
	TaskID                string     `json:"task_id"`
	Name                  string     `json:"name"`
	Description           string     `json:"description,omitempty"`
	RequiredForCompletion bool       `json:"required_for_completion"`
	Status                TaskStatus `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (s *Subtask) Validate() error {
	if s.Name == "" {
		return Validationf("subtask name cannot be empty")
	}
	if len(s.Name) > MaxNameLength {
		return Validationf("subtask name cannot exceed %d characters", MaxNameLength)
	}
	if s.TaskID == "" {
		return Validationf("subtask must be associated with a task")
	}
	if !IsValidSubtaskStatus(s.Status) {
		return Validationf("invalid subtask status: %s", s.Status)
	}
	return nil
}
