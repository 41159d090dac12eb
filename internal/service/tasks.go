package service

import (
	"context"
	"strings"
	"time"

	"minder/internal/models"
	"minder/internal/slugid"
	"minder/internal/store"
)

// TaskService centralizes task validation, lifecycle rules and the
// dependency graph.
type TaskService struct {
	store    *store.Store
	resolver *Resolver
}

// NewTaskService constructs a TaskService.
func NewTaskService(st *store.Store, resolver *Resolver) *TaskService {
	return &TaskService{store: st, resolver: resolver}
}

// TaskCreateInput carries the caller-supplied fields for a new task.
type TaskCreateInput struct {
	Project     string
	Name        string
	Description string
	Status      string
}

// Create validates input and inserts a new task under the resolved project.
// Status defaults to NOT_STARTED when omitted.
func (s *TaskService) Create(ctx context.Context, input TaskCreateInput) (*models.Task, error) {
	project, err := s.resolver.ResolveProject(ctx, input.Project)
	if err != nil {
		return nil, err
	}

	status := models.DefaultTaskStatus
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := models.ParseTaskStatus(input.Status)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		status = parsed
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          slugid.NewID(),
		ProjectID:   project.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get resolves a task by id, or by slug within a project.
func (s *TaskService) Get(ctx context.Context, projectIdentifier, identifier string) (*models.Task, error) {
	return s.resolver.ResolveTask(ctx, projectIdentifier, identifier)
}

// List returns tasks, optionally restricted to one project and a set of
// statuses.
func (s *TaskService) List(ctx context.Context, projectIdentifier string, statuses []string) ([]models.Task, error) {
	filter := store.TaskFilter{}
	if strings.TrimSpace(projectIdentifier) != "" {
		project, err := s.resolver.ResolveProject(ctx, projectIdentifier)
		if err != nil {
			return nil, err
		}
		filter.ProjectID = project.ID
	}
	for _, raw := range statuses {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	return s.store.ListTasks(ctx, filter)
}

// TaskUpdateInput carries optional field changes. Nil fields are left
// unchanged. Project moves the task into another project, resolved by id
// or slug.
type TaskUpdateInput struct {
	Name        *string
	Description *string
	Status      *string
	Project     *string
}

// Update applies field changes after validating them against the task
// state machine. Completing a task requires every required subtask to be
// COMPLETED.
func (s *TaskService) Update(ctx context.Context, projectIdentifier, identifier string, input TaskUpdateInput) (*models.Task, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, identifier)
	if err != nil {
		return nil, err
	}

	update := store.TaskUpdate{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, models.Validationf("task name cannot be empty")
		}
		if len(name) > models.MaxNameLength {
			return nil, models.Validationf("task name cannot exceed %d characters", models.MaxNameLength)
		}
		update.Name = &name
	}
	if input.Description != nil {
		update.Description = input.Description
	}
	if input.Status != nil {
		status, err := models.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		if !models.CanTransitionTask(task.Status, status) {
			return nil, models.InvalidTransitionError("task", string(task.Status), string(status))
		}
		if status == models.TaskCompleted && task.Status != models.TaskCompleted {
			if err := s.checkRequiredSubtasksComplete(ctx, task.ID); err != nil {
				return nil, err
			}
		}
		update.Status = &status
	}
	if input.Project != nil {
		target, err := s.resolver.ResolveProject(ctx, *input.Project)
		if err != nil {
			return nil, err
		}
		update.ProjectID = &target.ID
	}

	if err := s.store.UpdateTask(ctx, task.ID, update, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.store.GetTask(ctx, task.ID)
}

// checkRequiredSubtasksComplete gates the COMPLETED transition: every
// subtask flagged required_for_completion must be COMPLETED.
func (s *TaskService) checkRequiredSubtasksComplete(ctx context.Context, taskID string) error {
	subtasks, err := s.store.ListSubtasks(ctx, taskID, nil)
	if err != nil {
		return err
	}

	var names, statuses []string
	for _, subtask := range subtasks {
		if subtask.RequiredForCompletion && subtask.Status != models.TaskCompleted {
			names = append(names, subtask.Name)
			statuses = append(statuses, string(subtask.Status))
		}
	}
	if len(names) > 0 {
		return models.IncompleteChildrenError("required subtasks", names, statuses)
	}
	return nil
}

// Delete removes a task. Tasks that other tasks depend on cannot be
// deleted; the dependents must drop their edges first.
func (s *TaskService) Delete(ctx context.Context, projectIdentifier, identifier string) error {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, identifier)
	if err != nil {
		return err
	}

	dependents, err := s.store.ListDependents(ctx, task.ID)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		names := make([]string, 0, len(dependents))
		for _, dependent := range dependents {
			names = append(names, dependent.Name)
		}
		return models.DependentExistsf("cannot delete task %s: %d task(s) depend on it (%s)",
			task.Slug, len(dependents), strings.Join(names, ", "))
	}

	_, err = s.store.DeleteTask(ctx, task.ID)
	return err
}

// AddDependency records that task depends on dependency. Both arguments
// are resolved within the same optional project scope. Returns false when
// the edge already existed.
func (s *TaskService) AddDependency(ctx context.Context, projectIdentifier, taskIdentifier, dependencyIdentifier string) (bool, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return false, err
	}
	dependency, err := s.resolver.ResolveTask(ctx, projectIdentifier, dependencyIdentifier)
	if err != nil {
		return false, err
	}
	return s.store.AddDependency(ctx, task.ID, dependency.ID)
}

// RemoveDependency removes a dependency edge. Removing an edge that does
// not exist is a NotFound error.
func (s *TaskService) RemoveDependency(ctx context.Context, projectIdentifier, taskIdentifier, dependencyIdentifier string) error {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return err
	}
	dependency, err := s.resolver.ResolveTask(ctx, projectIdentifier, dependencyIdentifier)
	if err != nil {
		return err
	}

	removed, err := s.store.RemoveDependency(ctx, task.ID, dependency.ID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NotFoundf("task %s does not depend on %s", task.Slug, dependency.Slug)
	}
	return nil
}

// ListDependencies returns the tasks a task depends on.
func (s *TaskService) ListDependencies(ctx context.Context, projectIdentifier, taskIdentifier string) ([]models.Task, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}
	return s.store.ListDependencies(ctx, task.ID)
}

// ListDependents returns the tasks that depend on a task.
func (s *TaskService) ListDependents(ctx context.Context, projectIdentifier, taskIdentifier string) ([]models.Task, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}
	return s.store.ListDependents(ctx, task.ID)
}
