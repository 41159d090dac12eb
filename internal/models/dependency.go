package models

// Dependency is a directed edge stating that TaskID depends on
// DependencyID. Edges are advisory ordering information; they never change
// a task's status automatically.
type Dependency struct {
	TaskID       string `json:"task_id"`
	DependencyID string `json:"dependency_id"`
}
