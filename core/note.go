package core

import (
	"fmt"
	"strings"
	"time"
)

// Note is a free-text note keyed by its title. Titles are unique within
// a notebook, compared case-insensitively.
type Note struct {
	Title      string
	Body       string
	InsertedAt time.Time // When the note was created
	UpdatedAt  time.Time // When the body was last replaced
}

// Key returns the normalized title used for lookup and storage: trimmed
// and lowercased, so "Shopping" and "shopping" name the same note.
func (n *Note) Key() string {
	return NoteKey(n.Title)
}

// NoteKey normalizes a title for lookup.
func NoteKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - Title must not be empty or whitespace-only
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if NoteKey(note.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyTitle)
	}

	return nil
}
