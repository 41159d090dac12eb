package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"minder/internal/models"
)

// NoteUpdate describes fields to update. Nil fields are left unchanged.
type NoteUpdate struct {
	Content *string
	Author  *string
}

// CreateNote inserts a note attached to a project or task.
func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	if note == nil {
		return fmt.Errorf("note is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, content, author, entity_type, entity_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		note.ID,
		note.Content,
		nullIfEmpty(note.Author),
		string(note.EntityType),
		note.EntityID,
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
	)
	return err
}

// GetNote returns a note by id, or nil when absent.
func (s *Store) GetNote(ctx context.Context, id string) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, author, entity_type, entity_id, created_at, updated_at
		FROM notes WHERE id = ?
	`, id)
	return scanNote(row)
}

// ListNotes returns notes attached to an entity, newest first.
func (s *Store) ListNotes(ctx context.Context, entityType models.NoteEntityType, entityID string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, author, entity_type, entity_id, created_at, updated_at
		FROM notes WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at DESC
	`, string(entityType), entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

// UpdateNote updates mutable fields on a note.
func (s *Store) UpdateNote(ctx context.Context, id string, update NoteUpdate, updatedAt time.Time) error {
	set := []string{}
	args := []any{}

	if update.Content != nil {
		set = append(set, "content = ?")
		args = append(args, *update.Content)
	}
	if update.Author != nil {
		set = append(set, "author = ?")
		args = append(args, nullIfEmpty(*update.Author))
	}

	set = append(set, "updated_at = ?")
	args = append(args, formatTime(updatedAt))
	args = append(args, id)

	query := fmt.Sprintf("UPDATE notes SET %s WHERE id = ?", strings.Join(set, ", "))
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteNote deletes a note, reporting whether it existed.
func (s *Store) DeleteNote(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanNote(scanner interface {
	Scan(dest ...any) error
}) (*models.Note, error) {
	var note models.Note
	var author sql.NullString
	var entityType, createdAt, updatedAt string

	if err := scanner.Scan(
		&note.ID,
		&note.Content,
		&author,
		&entityType,
		&note.EntityID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	note.Author = author.String
	note.EntityType = models.NoteEntityType(entityType)

	parsedCreated, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	parsedUpdated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	note.CreatedAt = parsedCreated
	note.UpdatedAt = parsedUpdated

	return &note, nil
}
