package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"minder/internal/models"
	"minder/internal/slugid"
)

// TaskFilter narrows ListTasks results.
type TaskFilter struct {
	ProjectID string
	Statuses  []models.TaskStatus
}

// TaskUpdate describes fields to update. Nil fields are left unchanged.
// The slug is immutable and deliberately absent; ProjectID moves the task
// to another project.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *models.TaskStatus
	ProjectID   *string
}

// CreateTask inserts a task, resolving slug collisions within the owning
// project inside the insert transaction.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		slug, err := uniqueSlug(ctx, tx, slugid.Generate(task.Name), taskSlugExists, task.ProjectID)
		if err != nil {
			return err
		}
		task.Slug = slug

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tasks (id, project_id, slug, name, description, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			task.ID,
			task.ProjectID,
			task.Slug,
			task.Name,
			nullIfEmpty(task.Description),
			string(task.Status),
			formatTime(task.CreatedAt),
			formatTime(task.UpdatedAt),
		)
		return err
	})
}

// GetTask returns a task by id, or nil when absent.
func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, slug, name, description, status, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id)
	return scanTask(row)
}

// GetTaskBySlug returns a task by its project-scoped slug, or nil when absent.
func (s *Store) GetTaskBySlug(ctx context.Context, projectID, slug string) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, slug, name, description, status, created_at, updated_at
		FROM tasks WHERE project_id = ? AND slug = ?
	`, projectID, slug)
	return scanTask(row)
}

// ListTasks returns tasks matching the filter, ordered by name.
func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := "SELECT id, project_id, slug, name, description, status, created_at, updated_at FROM tasks"
	where := []string{}
	args := []any{}

	if filter.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if len(filter.Statuses) > 0 {
		where = append(where, fmt.Sprintf("status IN (%s)", placeholders(len(filter.Statuses))))
		for _, status := range filter.Statuses {
			args = append(args, string(status))
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// UpdateTask updates mutable fields on a task. When ProjectID changes, the
// task keeps its slug unless the destination project already holds it, in
// which case the usual numeric suffixing re-resolves it inside the same
// transaction.
func (s *Store) UpdateTask(ctx context.Context, id string, update TaskUpdate, updatedAt time.Time) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		set := []string{}
		args := []any{}

		if update.Name != nil {
			set = append(set, "name = ?")
			args = append(args, *update.Name)
		}
		if update.Description != nil {
			set = append(set, "description = ?")
			args = append(args, nullIfEmpty(*update.Description))
		}
		if update.Status != nil {
			set = append(set, "status = ?")
			args = append(args, string(*update.Status))
		}
		if update.ProjectID != nil {
			var slug string
			err := tx.QueryRowContext(ctx, "SELECT slug FROM tasks WHERE id = ?", id).Scan(&slug)
			if err != nil {
				return err
			}
			taken, err := taskSlugExists(ctx, tx, *update.ProjectID, slug)
			if err != nil {
				return err
			}
			if taken {
				slug, err = uniqueSlug(ctx, tx, slug, taskSlugExists, *update.ProjectID)
				if err != nil {
					return err
				}
				set = append(set, "slug = ?")
				args = append(args, slug)
			}
			set = append(set, "project_id = ?")
			args = append(args, *update.ProjectID)
		}

		set = append(set, "updated_at = ?")
		args = append(args, formatTime(updatedAt))
		args = append(args, id)

		query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(set, ", "))
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

// DeleteTask deletes a task and its notes. The caller must have verified
// that no other task depends on it; owned subtasks, dependency edges and
// metadata are removed by schema cascades.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE entity_type = 'task' AND entity_id = ?", id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})
	return deleted, err
}

func taskSlugExists(ctx context.Context, tx *sql.Tx, projectID, slug string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM tasks WHERE project_id = ? AND slug = ? LIMIT 1", projectID, slug).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*models.Task, error) {
	var task models.Task
	var description sql.NullString
	var status, createdAt, updatedAt string

	if err := scanner.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Slug,
		&task.Name,
		&description,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	task.Description = description.String
	task.Status = models.TaskStatus(status)

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = parsedCreated
	task.UpdatedAt = parsedUpdated

	return &task, nil
}
