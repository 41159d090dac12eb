package service

import (
	"context"
	"strings"

	"minder/internal/models"
	"minder/internal/store"
)

// Resolver turns user-supplied identifiers into entities. Lookups try the
// opaque id first, then the slug, so agents can pass either interchangeably.
type Resolver struct {
	store *store.Store
}

// NewResolver constructs a Resolver.
func NewResolver(st *store.Store) *Resolver {
	return &Resolver{store: st}
}

// ResolveProject resolves a project by id or global slug.
func (r *Resolver) ResolveProject(ctx context.Context, identifier string) (*models.Project, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.Validationf("project identifier is required")
	}

	project, err := r.store.GetProject(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if project == nil {
		project, err = r.store.GetProjectBySlug(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}
	if project == nil {
		return nil, models.NotFoundf("project not found: %s", identifier)
	}
	return project, nil
}

// ResolveTask resolves a task by id, or by slug scoped to a project. The
// project argument may itself be an id or slug; it is required only for
// slug lookups.
func (r *Resolver) ResolveTask(ctx context.Context, projectIdentifier, identifier string) (*models.Task, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.Validationf("task identifier is required")
	}

	task, err := r.store.GetTask(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if task != nil {
		return task, nil
	}

	if strings.TrimSpace(projectIdentifier) != "" {
		project, err := r.ResolveProject(ctx, projectIdentifier)
		if err != nil {
			return nil, err
		}
		task, err = r.store.GetTaskBySlug(ctx, project.ID, identifier)
		if err != nil {
			return nil, err
		}
		if task != nil {
			return task, nil
		}
	}

	return nil, models.NotFoundf("task not found: %s", identifier)
}
