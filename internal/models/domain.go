package models

import (
	"fmt"
	"strings"
)

// ProjectStatus defines allowed lifecycle states for projects.
type ProjectStatus string

const (
	ProjectProspective ProjectStatus = "PROSPECTIVE"
	ProjectActive      ProjectStatus = "ACTIVE"
	ProjectCompleted   ProjectStatus = "COMPLETED"
	ProjectArchived    ProjectStatus = "ARCHIVED"
	ProjectCancelled   ProjectStatus = "CANCELLED"
)

// TaskStatus defines allowed lifecycle states for tasks and subtasks.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "NOT_STARTED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskBlocked    TaskStatus = "BLOCKED"
	TaskPaused     TaskStatus = "PAUSED"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskAbandoned  TaskStatus = "ABANDONED"
)

const (
	DefaultProjectStatus = ProjectActive
	DefaultTaskStatus    = TaskNotStarted

	MaxNameLength = 100
)

var validProjectStatuses = map[ProjectStatus]struct{}{
	ProjectProspective: {},
	ProjectActive:      {},
	ProjectCompleted:   {},
	ProjectArchived:    {},
	ProjectCancelled:   {},
}

var validTaskStatuses = map[TaskStatus]struct{}{
	TaskNotStarted: {},
	TaskInProgress: {},
	TaskBlocked:    {},
	TaskPaused:     {},
	TaskCompleted:  {},
	TaskAbandoned:  {},
}

// projectTransitions enumerates the directed edges of the project state
// machine. ARCHIVED has no outgoing edges.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectProspective: {ProjectActive, ProjectCancelled},
	ProjectActive:      {ProjectCompleted, ProjectCancelled},
	ProjectCompleted:   {ProjectArchived},
	ProjectCancelled:   {ProjectArchived},
	ProjectArchived:    {},
}

// taskTransitions enumerates the directed edges of the task state machine.
// COMPLETED and ABANDONED are terminal.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskNotStarted: {TaskInProgress},
	TaskInProgress: {TaskCompleted, TaskBlocked, TaskPaused, TaskAbandoned},
	TaskBlocked:    {TaskInProgress},
	TaskPaused:     {TaskInProgress, TaskBlocked},
	TaskCompleted:  {},
	TaskAbandoned:  {},
}

func IsValidProjectStatus(status ProjectStatus) bool {
	_, ok := validProjectStatuses[status]
	return ok
}

func IsValidTaskStatus(status TaskStatus) bool {
	_, ok := validTaskStatuses[status]
	return ok
}

// IsValidSubtaskStatus reports whether a status may be held by a subtask.
// Subtasks share the task status family minus ABANDONED.
func IsValidSubtaskStatus(status TaskStatus) bool {
	return IsValidTaskStatus(status) && status != TaskAbandoned
}

func ParseProjectStatus(raw string) (ProjectStatus, error) {
	value := ProjectStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidProjectStatus(value) {
		return "", fmt.Errorf("invalid project status: %s", raw)
	}
	return value, nil
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := TaskStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidTaskStatus(value) {
		return "", fmt.Errorf("invalid task status: %s", raw)
	}
	return value, nil
}

// CanTransitionProject reports whether the project state machine permits
// moving from one status to another. Staying put is always permitted.
func CanTransitionProject(from, to ProjectStatus) bool {
	if from == to {
		return true
	}
	for _, next := range projectTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionTask reports whether the task state machine permits moving
// from one status to another. Staying put is always permitted.
func CanTransitionTask(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionSubtask applies the task transition table restricted to the
// subtask status family.
func CanTransitionSubtask(from, to TaskStatus) bool {
	if !IsValidSubtaskStatus(to) {
		return false
	}
	return CanTransitionTask(from, to)
}

func ProjectStatusStrings() []string {
	return []string{
		string(ProjectProspective),
		string(ProjectActive),
		string(ProjectCompleted),
		string(ProjectArchived),
		string(ProjectCancelled),
	}
}

func TaskStatusStrings() []string {
	return []string{
		string(TaskNotStarted),
		string(TaskInProgress),
		string(TaskBlocked),
		string(TaskPaused),
		string(TaskCompleted),
		string(TaskAbandoned),
	}
}
