package service

import (
	"context"
	"strings"
	"time"

	"minder/internal/models"
	"minder/internal/slugid"
	"minder/internal/store"
)

// SubtaskService manages checklist items under tasks.
type SubtaskService struct {
	store    *store.Store
	resolver *Resolver
}

// NewSubtaskService constructs a SubtaskService.
func NewSubtaskService(st *store.Store, resolver *Resolver) *SubtaskService {
	return &SubtaskService{store: st, resolver: resolver}
}

// SubtaskCreateInput carries the caller-supplied fields for a new subtask.
// Required defaults to true when nil.
type SubtaskCreateInput struct {
	Project     string
	Task        string
	Name        string
	Description string
	Required    *bool
}

// Create validates input and inserts a new subtask under the resolved task.
func (s *SubtaskService) Create(ctx context.Context, input SubtaskCreateInput) (*models.Subtask, error) {
	task, err := s.resolver.ResolveTask(ctx, input.Project, input.Task)
	if err != nil {
		return nil, err
	}

	required := true
	if input.Required != nil {
		required = *input.Required
	}

	now := time.Now().UTC()
	subtask := &models.Subtask{
		ID:                    slugid.NewID(),
		TaskID:                task.ID,
		Name:                  strings.TrimSpace(input.Name),
		Description:           input.Description,
		RequiredForCompletion: required,
		Status:                models.TaskNotStarted,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := subtask.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateSubtask(ctx, subtask); err != nil {
		return nil, err
	}
	return subtask, nil
}

// Get returns a subtask by id.
func (s *SubtaskService) Get(ctx context.Context, id string) (*models.Subtask, error) {
	subtask, err := s.store.GetSubtask(ctx, id)
	if err != nil {
		return nil, err
	}
	if subtask == nil {
		return nil, models.NotFoundf("subtask not found: %s", id)
	}
	return subtask, nil
}

// List returns the subtasks of a task, optionally filtered by status.
func (s *SubtaskService) List(ctx context.Context, projectIdentifier, taskIdentifier, status string) ([]models.Subtask, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}

	var filter *models.TaskStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := models.ParseTaskStatus(status)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		if !models.IsValidSubtaskStatus(parsed) {
			return nil, models.Validationf("invalid subtask status: %s", status)
		}
		filter = &parsed
	}
	return s.store.ListSubtasks(ctx, task.ID, filter)
}

// SubtaskUpdateInput carries optional field changes. Nil fields are left
// unchanged.
type SubtaskUpdateInput struct {
	Name        *string
	Description *string
	Required    *bool
	Status      *string
}

// Update applies field changes after validating them against the subtask
// state machine.
func (s *SubtaskService) Update(ctx context.Context, id string, input SubtaskUpdateInput) (*models.Subtask, error) {
	subtask, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update := store.SubtaskUpdate{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, models.Validationf("subtask name cannot be empty")
		}
		if len(name) > models.MaxNameLength {
			return nil, models.Validationf("subtask name cannot exceed %d characters", models.MaxNameLength)
		}
		update.Name = &name
	}
	if input.Description != nil {
		update.Description = input.Description
	}
	if input.Required != nil {
		update.RequiredForCompletion = input.Required
	}
	if input.Status != nil {
		status, err := models.ParseTaskStatus(*input.Status)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		if !models.IsValidSubtaskStatus(status) {
			return nil, models.Validationf("invalid subtask status: %s", *input.Status)
		}
		if !models.CanTransitionSubtask(subtask.Status, status) {
			return nil, models.InvalidTransitionError("subtask", string(subtask.Status), string(status))
		}
		update.Status = &status
	}

	if err := s.store.UpdateSubtask(ctx, subtask.ID, update, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.store.GetSubtask(ctx, subtask.ID)
}

// Delete removes a subtask.
func (s *SubtaskService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteSubtask(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundf("subtask not found: %s", id)
	}
	return nil
}
