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

// ProjectUpdate describes fields to update. Nil fields are left unchanged.
// The slug is immutable and deliberately absent.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
}

// CreateProject inserts a project, resolving slug collisions with numeric
// suffixes inside the insert transaction.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		slug, err := uniqueSlug(ctx, tx, slugid.Generate(project.Name), projectSlugExists, "")
		if err != nil {
			return err
		}
		project.Slug = slug

		_, err = tx.ExecContext(ctx, `
			INSERT INTO projects (id, slug, name, description, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			project.ID,
			project.Slug,
			project.Name,
			nullIfEmpty(project.Description),
			string(project.Status),
			formatTime(project.CreatedAt),
			formatTime(project.UpdatedAt),
		)
		return err
	})
}

// GetProject returns a project by id, or nil when absent.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, name, description, status, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)
	return scanProject(row)
}

// GetProjectBySlug returns a project by slug, or nil when absent.
func (s *Store) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, name, description, status, created_at, updated_at
		FROM projects WHERE slug = ?
	`, slug)
	return scanProject(row)
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, name, description, status, created_at, updated_at
		FROM projects ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// UpdateProject updates mutable fields on a project and refreshes
// updated_at. Transition validation is the lifecycle manager's job.
func (s *Store) UpdateProject(ctx context.Context, id string, update ProjectUpdate, updatedAt time.Time) error {
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

	set = append(set, "updated_at = ?")
	args = append(args, formatTime(updatedAt))
	args = append(args, id)

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(set, ", "))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteProject deletes an empty project row. Task ownership checks are the
// lifecycle manager's job.
func (s *Store) DeleteProject(ctx context.Context, id string) (bool, error) {
	return s.deleteProjectWith(ctx, id, false)
}

// DeleteProjectCascade deletes a project, its tasks (schema cascades cover
// subtasks, dependencies and metadata) and all attached notes as one
// atomic unit.
func (s *Store) DeleteProjectCascade(ctx context.Context, id string) (bool, error) {
	return s.deleteProjectWith(ctx, id, true)
}

func (s *Store) deleteProjectWith(ctx context.Context, id string, cascade bool) (bool, error) {
	deleted := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if cascade {
			// Notes are attached polymorphically and carry no foreign key,
			// so they are cleaned up here rather than by the schema.
			if _, err := tx.ExecContext(ctx, `
				DELETE FROM notes WHERE entity_type = 'task'
				AND entity_id IN (SELECT id FROM tasks WHERE project_id = ?)
			`, id); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE project_id = ?", id); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE entity_type = 'project' AND entity_id = ?", id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
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

// CountTasks returns the number of tasks owned by a project.
func (s *Store) CountTasks(ctx context.Context, projectID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks WHERE project_id = ?", projectID).Scan(&count)
	return count, err
}

func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*models.Project, error) {
	var project models.Project
	var description sql.NullString
	var status, createdAt, updatedAt string

	if err := scanner.Scan(
		&project.ID,
		&project.Slug,
		&project.Name,
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

	project.Description = description.String
	project.Status = models.ProjectStatus(status)

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	project.CreatedAt = parsedCreated
	project.UpdatedAt = parsedUpdated

	return &project, nil
}

// slugExistsFunc checks a candidate slug within a scope.
type slugExistsFunc func(ctx context.Context, tx *sql.Tx, scope, slug string) (bool, error)

func projectSlugExists(ctx context.Context, tx *sql.Tx, _ string, slug string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE slug = ? LIMIT 1", slug).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// uniqueSlug appends -1, -2, ... to a base slug until it is unique within
// its scope.
func uniqueSlug(ctx context.Context, tx *sql.Tx, base string, exists slugExistsFunc, scope string) (string, error) {
	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := exists(ctx, tx, scope, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
