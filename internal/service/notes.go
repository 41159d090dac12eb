package service

import (
	"context"
	"strings"
	"time"

	"minder/internal/models"
	"minder/internal/slugid"
	"minder/internal/store"
)

// NoteService manages free-form notes attached to projects and tasks.
type NoteService struct {
	store    *store.Store
	resolver *Resolver
}

// NewNoteService constructs a NoteService.
func NewNoteService(st *store.Store, resolver *Resolver) *NoteService {
	return &NoteService{store: st, resolver: resolver}
}

// NoteCreateInput carries the caller-supplied fields for a new note.
// Exactly one of Project or Task must be set; Task lookups may use Project
// as slug scope.
type NoteCreateInput struct {
	Project string
	Task    string
	Content string
	Author  string
}

// Add validates input and attaches a note to the resolved entity.
func (s *NoteService) Add(ctx context.Context, input NoteCreateInput) (*models.Note, error) {
	entityType, entityID, err := s.resolveEntity(ctx, input.Project, input.Task)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &models.Note{
		ID:         slugid.NewID(),
		Content:    input.Content,
		Author:     strings.TrimSpace(input.Author),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the notes attached to a project or task, newest first.
func (s *NoteService) List(ctx context.Context, projectIdentifier, taskIdentifier string) ([]models.Note, error) {
	entityType, entityID, err := s.resolveEntity(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}
	return s.store.ListNotes(ctx, entityType, entityID)
}

// Get returns a note by id.
func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, models.NotFoundf("note not found: %s", id)
	}
	return note, nil
}

// NoteUpdateInput carries optional field changes. Nil fields are left
// unchanged.
type NoteUpdateInput struct {
	Content *string
	Author  *string
}

// Update applies field changes to a note.
func (s *NoteService) Update(ctx context.Context, id string, input NoteUpdateInput) (*models.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update := store.NoteUpdate{}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, models.Validationf("note content cannot be empty")
		}
		update.Content = input.Content
	}
	if input.Author != nil {
		update.Author = input.Author
	}

	if err := s.store.UpdateNote(ctx, note.ID, update, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.store.GetNote(ctx, note.ID)
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteNote(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundf("note not found: %s", id)
	}
	return nil
}

// resolveEntity picks the note target. When a task identifier is present
// the note attaches to the task (the project identifier, if any, only
// scopes the slug lookup); otherwise it attaches to the project.
func (s *NoteService) resolveEntity(ctx context.Context, projectIdentifier, taskIdentifier string) (models.NoteEntityType, string, error) {
	if strings.TrimSpace(taskIdentifier) != "" {
		task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
		if err != nil {
			return "", "", err
		}
		return models.NoteEntityTask, task.ID, nil
	}
	if strings.TrimSpace(projectIdentifier) != "" {
		project, err := s.resolver.ResolveProject(ctx, projectIdentifier)
		if err != nil {
			return "", "", err
		}
		return models.NoteEntityProject, project.ID, nil
	}
	return "", "", models.Validationf("a project or task is required")
}
