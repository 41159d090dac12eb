package service

import (
	"context"
	"strings"

	"minder/internal/models"
	"minder/internal/store"
)

// MetadataService manages typed key/value attributes on tasks.
type MetadataService struct {
	store    *store.Store
	resolver *Resolver
}

// NewMetadataService constructs a MetadataService.
func NewMetadataService(st *store.Store, resolver *Resolver) *MetadataService {
	return &MetadataService{store: st, resolver: resolver}
}

// Set stores a metadata value on a task. When valueType is empty the type
// is inferred; otherwise the raw value must coerce to the requested type.
// Setting an existing key overwrites it silently.
func (s *MetadataService) Set(ctx context.Context, projectIdentifier, taskIdentifier, key, raw, valueType string) (*models.MetadataValue, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, models.Validationf("metadata key is required")
	}

	explicit := models.MetadataType(strings.ToLower(strings.TrimSpace(valueType)))
	if explicit != "" && !models.IsValidMetadataType(explicit) {
		return nil, models.Validationf("invalid metadata type: %s", valueType)
	}

	value, err := models.ParseMetadataValue(raw, explicit)
	if err != nil {
		return nil, err
	}
	value.TaskID = task.ID
	value.Key = key

	if err := s.store.UpsertMetadata(ctx, value); err != nil {
		return nil, err
	}
	return &value, nil
}

// Get returns metadata on a task: all entries, or one key. Requesting a
// specific missing key is a NotFound error.
func (s *MetadataService) Get(ctx context.Context, projectIdentifier, taskIdentifier, key string) ([]models.MetadataValue, error) {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}

	key = strings.TrimSpace(key)
	values, err := s.store.GetMetadata(ctx, task.ID, key)
	if err != nil {
		return nil, err
	}
	if key != "" && len(values) == 0 {
		return nil, models.NotFoundf("metadata key not found: %s", key)
	}
	return values, nil
}

// Delete removes a metadata key from a task.
func (s *MetadataService) Delete(ctx context.Context, projectIdentifier, taskIdentifier, key string) error {
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return err
	}

	deleted, err := s.store.DeleteMetadata(ctx, task.ID, strings.TrimSpace(key))
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundf("metadata key not found: %s", key)
	}
	return nil
}

// Query returns the tasks whose metadata key equals the given value. The
// comparison value goes through the same parsing as Set, so "42" matches
// int-typed entries unless an explicit type says otherwise.
func (s *MetadataService) Query(ctx context.Context, key, raw, valueType string) ([]models.Task, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, models.Validationf("metadata key is required")
	}

	explicit := models.MetadataType(strings.ToLower(strings.TrimSpace(valueType)))
	if explicit != "" && !models.IsValidMetadataType(explicit) {
		return nil, models.Validationf("invalid metadata type: %s", valueType)
	}

	value, err := models.ParseMetadataValue(raw, explicit)
	if err != nil {
		return nil, err
	}
	return s.store.QueryTasksByMetadata(ctx, key, value)
}
