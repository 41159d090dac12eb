package service

import (
	"context"
	"strings"
	"time"

	"minder/internal/models"
	"minder/internal/slugid"
	"minder/internal/store"
)

// ProjectService centralizes project validation, lifecycle rules and
// deletion policy.
type ProjectService struct {
	store    *store.Store
	resolver *Resolver
}

// NewProjectService constructs a ProjectService.
func NewProjectService(st *store.Store, resolver *Resolver) *ProjectService {
	return &ProjectService{store: st, resolver: resolver}
}

// ProjectCreateInput carries the caller-supplied fields for a new project.
type ProjectCreateInput struct {
	Name        string
	Description string
	Status      string
}

// Create validates input and inserts a new project. Status defaults to
// ACTIVE when omitted.
func (s *ProjectService) Create(ctx context.Context, input ProjectCreateInput) (*models.Project, error) {
	status := models.DefaultProjectStatus
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := models.ParseProjectStatus(input.Status)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		status = parsed
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:          slugid.NewID(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get resolves a project by id or slug.
func (s *ProjectService) Get(ctx context.Context, identifier string) (*models.Project, error) {
	return s.resolver.ResolveProject(ctx, identifier)
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

// ProjectUpdateInput carries optional field changes. Nil fields are left
// unchanged.
type ProjectUpdateInput struct {
	Name        *string
	Description *string
	Status      *string
}

// Update applies field changes after validating them against the project
// state machine. Completing a project requires every task to be COMPLETED
// or ABANDONED.
func (s *ProjectService) Update(ctx context.Context, identifier string, input ProjectUpdateInput) (*models.Project, error) {
	project, err := s.resolver.ResolveProject(ctx, identifier)
	if err != nil {
		return nil, err
	}

	update := store.ProjectUpdate{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, models.Validationf("project name cannot be empty")
		}
		if len(name) > models.MaxNameLength {
			return nil, models.Validationf("project name cannot exceed %d characters", models.MaxNameLength)
		}
		update.Name = &name
	}
	if input.Description != nil {
		update.Description = input.Description
	}
	if input.Status != nil {
		status, err := models.ParseProjectStatus(*input.Status)
		if err != nil {
			return nil, models.Validationf("%s", err)
		}
		if !models.CanTransitionProject(project.Status, status) {
			return nil, models.InvalidTransitionError("project", string(project.Status), string(status))
		}
		if status == models.ProjectCompleted && project.Status != models.ProjectCompleted {
			if err := s.checkTasksComplete(ctx, project.ID); err != nil {
				return nil, err
			}
		}
		update.Status = &status
	}

	if err := s.store.UpdateProject(ctx, project.ID, update, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.store.GetProject(ctx, project.ID)
}

// checkTasksComplete gates the COMPLETED transition: every task must be
// COMPLETED or ABANDONED.
func (s *ProjectService) checkTasksComplete(ctx context.Context, projectID string) error {
	tasks, err := s.store.ListTasks(ctx, store.TaskFilter{ProjectID: projectID})
	if err != nil {
		return err
	}

	var names, statuses []string
	for _, task := range tasks {
		if task.Status != models.TaskCompleted && task.Status != models.TaskAbandoned {
			names = append(names, task.Name)
			statuses = append(statuses, string(task.Status))
		}
	}
	if len(names) > 0 {
		return models.IncompleteChildrenError("tasks", names, statuses)
	}
	return nil
}

// Delete removes a project. Without force, a project that still owns tasks
// is refused with the task count; with force, the project and everything
// under it go in one transaction.
func (s *ProjectService) Delete(ctx context.Context, identifier string, force bool) error {
	project, err := s.resolver.ResolveProject(ctx, identifier)
	if err != nil {
		return err
	}

	if force {
		_, err := s.store.DeleteProjectCascade(ctx, project.ID)
		return err
	}

	count, err := s.store.CountTasks(ctx, project.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.NotEmptyf("project %s still has %d task(s); use force to delete everything", project.Slug, count)
	}
	_, err = s.store.DeleteProject(ctx, project.ID)
	return err
}
