package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"minder/internal/models"
	"minder/internal/slugid"
	"minder/internal/store"
)

// TemplateService manages reusable subtask blueprints.
type TemplateService struct {
	store    *store.Store
	resolver *Resolver
}

// NewTemplateService constructs a TemplateService.
func NewTemplateService(st *store.Store, resolver *Resolver) *TemplateService {
	return &TemplateService{store: st, resolver: resolver}
}

// Create inserts a new, empty template.
func (s *TemplateService) Create(ctx context.Context, name, description string) (*models.TaskTemplate, error) {
	now := time.Now().UTC()
	template := &models.TaskTemplate{
		ID:          slugid.NewID(),
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Get returns a template by id.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.TaskTemplate, error) {
	template, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, models.NotFoundf("template not found: %s", id)
	}
	return template, nil
}

// List returns all templates.
func (s *TemplateService) List(ctx context.Context) ([]models.TaskTemplate, error) {
	return s.store.ListTemplates(ctx)
}

// Delete removes a template and its subtask blueprints.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteTemplate(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NotFoundf("template not found: %s", id)
	}
	return nil
}

// AddSubtask appends a subtask blueprint to a template. Required defaults
// to true when nil.
func (s *TemplateService) AddSubtask(ctx context.Context, templateID, name, description string, required *bool) (*models.SubtaskTemplate, error) {
	template, err := s.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	req := true
	if required != nil {
		req = *required
	}

	blueprint := &models.SubtaskTemplate{
		ID:                    slugid.NewID(),
		TemplateID:            template.ID,
		Name:                  strings.TrimSpace(name),
		Description:           description,
		RequiredForCompletion: req,
	}
	if err := blueprint.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateSubtaskTemplate(ctx, blueprint); err != nil {
		return nil, err
	}
	return blueprint, nil
}

// Subtasks returns the blueprint rows of a template.
func (s *TemplateService) Subtasks(ctx context.Context, templateID string) ([]models.SubtaskTemplate, error) {
	template, err := s.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return s.store.ListSubtaskTemplates(ctx, template.ID)
}

// Apply instantiates a template's blueprints as fresh subtasks under the
// resolved task. The template itself is never mutated.
func (s *TemplateService) Apply(ctx context.Context, templateID, projectIdentifier, taskIdentifier string) ([]models.Subtask, error) {
	template, err := s.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	task, err := s.resolver.ResolveTask(ctx, projectIdentifier, taskIdentifier)
	if err != nil {
		return nil, err
	}
	return s.store.ApplyTemplate(ctx, template.ID, task.ID, time.Now().UTC())
}

// templateFile is the YAML document accepted by Import.
type templateFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Subtasks    []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Required    *bool  `yaml:"required"`
	} `yaml:"subtasks"`
}

// Import reads a template definition from a YAML file and creates the
// template with all its subtask blueprints.
func (s *TemplateService) Import(ctx context.Context, path string) (*models.TaskTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}

	var doc templateFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, models.Validationf("invalid template file: %s", err)
	}

	template, err := s.Create(ctx, doc.Name, doc.Description)
	if err != nil {
		return nil, err
	}
	for _, subtask := range doc.Subtasks {
		if _, err := s.AddSubtask(ctx, template.ID, subtask.Name, subtask.Description, subtask.Required); err != nil {
			return nil, err
		}
	}
	return template, nil
}
