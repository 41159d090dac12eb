package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"minder/internal/models"
)

// SubtaskUpdate describes fields to update. Nil fields are left unchanged.
type SubtaskUpdate struct {
	Name                  *string
	Description           *string
	RequiredForCompletion *bool
	Status                *models.TaskStatus
}

// CreateSubtask inserts a subtask under its owning task.
func (s *Store) CreateSubtask(ctx context.Context, subtask *models.Subtask) error {
	if subtask == nil {
		return fmt.Errorf("subtask is required")
	}

	_, err := s.db.ExecContext(ctx, `
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
	)
	return err
}

// GetSubtask returns a subtask by id, or nil when absent.
func (s *Store) GetSubtask(ctx context.Context, id string) (*models.Subtask, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, task_id, name, description, required_for_completion, status, created_at, updated_at
		FROM subtasks WHERE id = ?
	`, id)
	return scanSubtask(row)
}

// ListSubtasks returns subtasks of a task, optionally filtered by status.
func (s *Store) ListSubtasks(ctx context.Context, taskID string, status *models.TaskStatus) ([]models.Subtask, error) {
	query := `
		SELECT id, task_id, name, description, required_for_completion, status, created_at, updated_at
		FROM subtasks WHERE task_id = ?
	`
	args := []any{taskID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []models.Subtask
	for rows.Next() {
		subtask, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, *subtask)
	}
	return subtasks, rows.Err()
}

// UpdateSubtask updates mutable fields on a subtask.
func (s *Store) UpdateSubtask(ctx context.Context, id string, update SubtaskUpdate, updatedAt time.Time) error {
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
	if update.RequiredForCompletion != nil {
		set = append(set, "required_for_completion = ?")
		args = append(args, boolToInt(*update.RequiredForCompletion))
	}
	if update.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*update.Status))
	}

	set = append(set, "updated_at = ?")
	args = append(args, formatTime(updatedAt))
	args = append(args, id)

	query := fmt.Sprintf("UPDATE subtasks SET %s WHERE id = ?", strings.Join(set, ", "))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteSubtask deletes a subtask, reporting whether it existed.
func (s *Store) DeleteSubtask(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM subtasks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanSubtask(scanner interface {
	Scan(dest ...any) error
}) (*models.Subtask, error) {
	var subtask models.Subtask
	var description sql.NullString
	var required int
	var status, createdAt, updatedAt string

	if err := scanner.Scan(
		&subtask.ID,
		&subtask.TaskID,
		&subtask.Name,
		&description,
		&required,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	subtask.Description = description.String
	subtask.RequiredForCompletion = required != 0
	subtask.Status = models.TaskStatus(status)

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	subtask.CreatedAt = parsedCreated
	subtask.UpdatedAt = parsedUpdated

	return &subtask, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
