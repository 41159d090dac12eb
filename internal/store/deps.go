package store

import (
	"context"
	"database/sql"

	"minder/internal/models"
)

// AddDependency records that task depends on dependency. The self-loop and
// cycle checks run before the insert, inside the same transaction, so a
// rejected edge leaves the graph untouched. Inserting an existing edge
// returns (false, nil).
func (s *Store) AddDependency(ctx context.Context, taskID, dependencyID string) (bool, error) {
	if taskID == dependencyID {
		return false, models.Conflictf("task %s cannot depend on itself", taskID)
	}

	added := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM task_dependencies WHERE task_id = ? AND dependency_id = ? LIMIT 1",
			taskID, dependencyID).Scan(&one)
		if err == nil {
			return nil // duplicate edge, no-op
		}
		if err != sql.ErrNoRows {
			return err
		}

		cyclic, err := pathExists(ctx, tx, dependencyID, taskID)
		if err != nil {
			return err
		}
		if cyclic {
			return models.Conflictf("dependency %s -> %s would create a circular reference", taskID, dependencyID)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO task_dependencies (task_id, dependency_id) VALUES (?, ?)",
			taskID, dependencyID); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// RemoveDependency deletes a dependency edge, reporting whether it existed.
func (s *Store) RemoveDependency(ctx context.Context, taskID, dependencyID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM task_dependencies WHERE task_id = ? AND dependency_id = ?",
		taskID, dependencyID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListDependencies returns the tasks a task depends on.
func (s *Store) ListDependencies(ctx context.Context, taskID string) ([]models.Task, error) {
	return s.queryDependencyTasks(ctx, `
		SELECT t.id, t.project_id, t.slug, t.name, t.description, t.status, t.created_at, t.updated_at
		FROM tasks t JOIN task_dependencies d ON t.id = d.dependency_id
		WHERE d.task_id = ? ORDER BY t.name ASC
	`, taskID)
}

// ListDependents returns the tasks that depend on a task.
func (s *Store) ListDependents(ctx context.Context, taskID string) ([]models.Task, error) {
	return s.queryDependencyTasks(ctx, `
		SELECT t.id, t.project_id, t.slug, t.name, t.description, t.status, t.created_at, t.updated_at
		FROM tasks t JOIN task_dependencies d ON t.id = d.task_id
		WHERE d.dependency_id = ? ORDER BY t.name ASC
	`, taskID)
}

// CountDependents returns how many tasks depend on the given task.
func (s *Store) CountDependents(ctx context.Context, taskID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM task_dependencies WHERE dependency_id = ?", taskID).Scan(&count)
	return count, err
}

func (s *Store) queryDependencyTasks(ctx context.Context, query, taskID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, taskID)
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

// pathExists walks the dependency graph from one task looking for another.
// The walk is an explicit-stack depth-first search with a visited set, so
// each check is bounded by the number of edges regardless of graph shape.
func pathExists(ctx context.Context, tx *sql.Tx, from, to string) (bool, error) {
	if from == to {
		return true, nil
	}

	visited := map[string]struct{}{from: {}}
	stack := []string{from}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next, err := dependencyIDs(ctx, tx, current)
		if err != nil {
			return false, err
		}
		for _, id := range next {
			if id == to {
				return true, nil
			}
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}
			stack = append(stack, id)
		}
	}
	return false, nil
}

func dependencyIDs(ctx context.Context, tx *sql.Tx, taskID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT dependency_id FROM task_dependencies WHERE task_id = ?", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
