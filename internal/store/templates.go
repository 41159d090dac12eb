package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"minder/internal/models"
	"minder/internal/slugid"
)

// CreateTemplate inserts a task template.
func (s *Store) CreateTemplate(ctx context.Context, template *models.TaskTemplate) error {
	if template == nil {
		return fmt.Errorf("template is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_templates (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		template.ID,
		template.Name,
		nullIfEmpty(template.Description),
		formatTime(template.CreatedAt),
		formatTime(template.UpdatedAt),
	)
	return err
}

// GetTemplate returns a template by id, or nil when absent.
func (s *Store) GetTemplate(ctx context.Context, id string) (*models.TaskTemplate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM task_templates WHERE id = ?
	`, id)
	return scanTemplate(row)
}

// ListTemplates returns all templates ordered by name.
func (s *Store) ListTemplates(ctx context.Context) ([]models.TaskTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM task_templates ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.TaskTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}
	return templates, rows.Err()
}

// DeleteTemplate deletes a template and, via cascade, its subtask
// templates. Reports whether the template existed.
func (s *Store) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM task_templates WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CreateSubtaskTemplate inserts a subtask blueprint under a template.
func (s *Store) CreateSubtaskTemplate(ctx context.Context, subtask *models.SubtaskTemplate) error {
	if subtask == nil {
		return fmt.Errorf("subtask template is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subtask_templates (id, template_id, name, description, required_for_completion)
		VALUES (?, ?, ?, ?, ?)
	`,
		subtask.ID,
		subtask.TemplateID,
		subtask.Name,
		nullIfEmpty(subtask.Description),
		boolToInt(subtask.RequiredForCompletion),
	)
	return err
}

// ListSubtaskTemplates returns the blueprint rows of a template.
func (s *Store) ListSubtaskTemplates(ctx context.Context, templateID string) ([]models.SubtaskTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template_id, name, description, required_for_completion
		FROM subtask_templates WHERE template_id = ? ORDER BY name ASC
	`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []models.SubtaskTemplate
	for rows.Next() {
		var subtask models.SubtaskTemplate
		var description sql.NullString
		var required int
		if err := rows.Scan(&subtask.ID, &subtask.TemplateID, &subtask.Name, &description, &required); err != nil {
			return nil, err
		}
		subtask.Description = description.String
		subtask.RequiredForCompletion = required != 0
		subtasks = append(subtasks, subtask)
	}
	return subtasks, rows.Err()
}

// ApplyTemplate instantiates a template's subtask blueprints as new subtask
// rows under the target task, atomically. The template is never mutated.
func (s *Store) ApplyTemplate(ctx context.Context, templateID, taskID string, now time.Time) ([]models.Subtask, error) {
	blueprints, err := s.ListSubtaskTemplates(ctx, templateID)
	if err != nil {
		return nil, err
	}

	created := make([]models.Subtask, 0, len(blueprints))
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		for _, blueprint := range blueprints {
			subtask := models.Subtask{
				ID:                    slugid.NewID(),
				TaskID:                taskID,
				Name:                  blueprint.Name,
				Description:           blueprint.Description,
				RequiredForCompletion: blueprint.RequiredForCompletion,
				Status:                models.TaskNotStarted,
				CreatedAt:             now,
				UpdatedAt:             now,
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO subtasks (id, task_id, name, description, required_for_completion, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`,
				subtask.ID,
				subtask.TaskID,
				subtask.Name,
				nullIfEmpty(subtask.Description),
				boolToInt(subtask.RequiredForCompletion),
				string(subtask.Status),
				formatTime(subtask.CreatedAt),
				formatTime(subtask.UpdatedAt),
			); err != nil {
				return err
			}
			created = append(created, subtask)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func scanTemplate(scanner interface {
	Scan(dest ...any) error
}) (*models.TaskTemplate, error) {
	var template models.TaskTemplate
	var description sql.NullString
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&template.ID,
		&template.Name,
		&description,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	template.Description = description.String

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	template.CreatedAt = parsedCreated
	template.UpdatedAt = parsedUpdated

	return &template, nil
}
