package storage

import (
	"context"

	"github.com/poiesic/rolodex/core"
)

// ContactRepository persists contacts keyed by identifier.
// Implementations must be safe for concurrent use.
type ContactRepository interface {
	// PutContacts writes one or more contacts, inserting or replacing.
	// Contacts must already carry their book-assigned identifiers.
	PutContacts(ctx context.Context, contacts ...*core.Contact) error

	// GetContact retrieves a single contact by identifier.
	// Returns ErrNotFound if no such contact is stored.
	GetContact(ctx context.Context, id core.ID) (*core.Contact, error)

	// DeleteContacts removes contacts by identifier.
	// Returns ErrNotFound if any identifier is absent.
	DeleteContacts(ctx context.Context, ids ...core.ID) error

	// AllContacts returns the complete identifier-to-contact mapping,
	// exactly as the book needs it to rebuild itself.
	AllContacts(ctx context.Context) (map[core.ID]*core.Contact, error)

	// FindByFingerprint returns the identifier of the stored contact
	// with the given content fingerprint. Returns ErrNotFound when no
	// contact matches.
	FindByFingerprint(ctx context.Context, fingerprint core.ID) (core.ID, error)

	// Close releases repository resources.
	Close() error
}

// NoteRepository persists notes keyed by normalized title.
// Implementations must be safe for concurrent use.
type NoteRepository interface {
	// PutNotes writes one or more notes, inserting or replacing.
	PutNotes(ctx context.Context, notes ...*core.Note) error

	// GetNote retrieves a single note by title, compared
	// case-insensitively. Returns ErrNotFound if no such note is stored.
	GetNote(ctx context.Context, title string) (*core.Note, error)

	// DeleteNotes removes notes by title.
	// Returns ErrNotFound if any title is absent.
	DeleteNotes(ctx context.Context, titles ...string) error

	// AllNotes returns the complete key-to-note mapping, exactly as the
	// notebook needs it to rebuild itself.
	AllNotes(ctx context.Context) (map[string]*core.Note, error)

	// Close releases repository resources.
	Close() error
}
