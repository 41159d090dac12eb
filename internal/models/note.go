package models

import "time"

// NoteEntityType names the kind of entity a note is attached to.
type NoteEntityType string

const (
	NoteEntityTask    NoteEntityType = "task"
	NoteEntityProject NoteEntityType = "project"
)

// Note is free-form text attached to exactly one project or task.
type Note struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Author     string         `json:"author,omitempty"`
	EntityType NoteEntityType `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (n *Note) Validate() error {
	if n.Content == "" {
		return Validationf("note content cannot be empty")
	}
	if n.EntityType != NoteEntityTask && n.EntityType != NoteEntityProject {
		return Validationf("invalid note entity type: %s", n.EntityType)
	}
	if n.EntityID == "" {
		return Validationf("note must be attached to an entity")
	}
	return nil
}
