package store

import (
	"context"
	"database/sql"
	"fmt"

	"minder/internal/models"
)

// UpsertMetadata sets a typed key/value on a task, overwriting silently
// when the key already exists. Exactly one value column is populated.
func (s *Store) UpsertMetadata(ctx context.Context, value models.MetadataValue) error {
	str, num, flt, ts, boolean, doc := metadataColumns(value)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_metadata (task_id, key, value_type, value_string, value_int, value_float, value_datetime, value_bool, value_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (task_id, key) DO UPDATE SET
			value_type = excluded.value_type,
			value_string = excluded.value_string,
			value_int = excluded.value_int,
			value_float = excluded.value_float,
			value_datetime = excluded.value_datetime,
			value_bool = excluded.value_bool,
			value_json = excluded.value_json
	`, value.TaskID, value.Key, string(value.Type), str, num, flt, ts, boolean, doc)
	return err
}

// GetMetadata returns metadata entries for a task, all of them or one key.
func (s *Store) GetMetadata(ctx context.Context, taskID, key string) ([]models.MetadataValue, error) {
	query := `
		SELECT task_id, key, value_type, value_string, value_int, value_float, value_datetime, value_bool, value_json
		FROM task_metadata WHERE task_id = ?
	`
	args := []any{taskID}
	if key != "" {
		query += " AND key = ?"
		args = append(args, key)
	}
	query += " ORDER BY key ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []models.MetadataValue
	for rows.Next() {
		value, err := scanMetadata(rows)
		if err != nil {
			return nil, err
		}
		values = append(values, *value)
	}
	return values, rows.Err()
}

// DeleteMetadata removes a key from a task, reporting whether it existed.
func (s *Store) DeleteMetadata(ctx context.Context, taskID, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM task_metadata WHERE task_id = ? AND key = ?", taskID, key)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// QueryTasksByMetadata returns tasks whose metadata key equals the typed
// value. Exact match only; the comparison runs against the column matching
// the value's type.
func (s *Store) QueryTasksByMetadata(ctx context.Context, key string, value models.MetadataValue) ([]models.Task, error) {
	column, arg := metadataQueryColumn(value)

	query := fmt.Sprintf(`
		SELECT t.id, t.project_id, t.slug, t.name, t.description, t.status, t.created_at, t.updated_at
		FROM tasks t JOIN task_metadata m ON t.id = m.task_id
		WHERE m.key = ? AND m.value_type = ? AND m.%s = ?
		ORDER BY t.name ASC
	`, column)

	rows, err := s.db.QueryContext(ctx, query, key, string(value.Type), arg)
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

func metadataColumns(value models.MetadataValue) (str, num, flt, ts, boolean, doc any) {
	switch value.Type {
	case models.MetadataInt:
		num = value.Int
	case models.MetadataFloat:
		flt = value.Float
	case models.MetadataDatetime:
		ts = formatTime(value.Datetime)
	case models.MetadataBool:
		boolean = boolToInt(value.Bool)
	case models.MetadataJSON:
		doc = value.JSON
	default:
		str = value.String
	}
	return
}

func metadataQueryColumn(value models.MetadataValue) (string, any) {
	switch value.Type {
	case models.MetadataInt:
		return "value_int", value.Int
	case models.MetadataFloat:
		return "value_float", value.Float
	case models.MetadataDatetime:
		return "value_datetime", formatTime(value.Datetime)
	case models.MetadataBool:
		return "value_bool", boolToInt(value.Bool)
	case models.MetadataJSON:
		return "value_json", value.JSON
	default:
		return "value_string", value.String
	}
}

func scanMetadata(scanner interface {
	Scan(dest ...any) error
}) (*models.MetadataValue, error) {
	var value models.MetadataValue
	var valueType string
	var str, ts, doc sql.NullString
	var num sql.NullInt64
	var flt sql.NullFloat64
	var boolean sql.NullInt64

	if err := scanner.Scan(
		&value.TaskID,
		&value.Key,
		&valueType,
		&str,
		&num,
		&flt,
		&ts,
		&boolean,
		&doc,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	value.Type = models.MetadataType(valueType)
	switch value.Type {
	case models.MetadataInt:
		value.Int = num.Int64
	case models.MetadataFloat:
		value.Float = flt.Float64
	case models.MetadataDatetime:
		parsed, err := parseTime(ts.String)
		if err != nil {
			return nil, err
		}
		value.Datetime = parsed
	case models.MetadataBool:
		value.Bool = boolean.Int64 != 0
	case models.MetadataJSON:
		value.JSON = doc.String
	default:
		value.String = str.String
	}

	return &value, nil
}
