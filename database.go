// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package rolodex

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/rolodex/book"
	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/ingest"
	"github.com/poiesic/rolodex/notes"
	"github.com/poiesic/rolodex/search"
	"github.com/poiesic/rolodex/storage"
	"github.com/poiesic/rolodex/storage/badger"
)

// Database ties the persistence layer to the in-memory book. The book is
// the source of truth while the process runs; every mutation that goes
// through the Database is written through to storage.
type Database struct {
	backend  *badger.Backend
	contacts storage.ContactRepository
	notes    storage.NoteRepository
	logger   *slog.Logger
}

// NewDatabase opens the contact database at filePath, creating it when
// absent.
func NewDatabase(filePath string) (*Database, error) {
	return newDatabase(filePath, false)
}

// NewMemoryDatabase opens a throwaway in-memory database, used in tests.
func NewMemoryDatabase() (*Database, error) {
	return newDatabase("", true)
}

func newDatabase(filePath string, inMemory bool) (*Database, error) {
	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	return &Database{
		backend:  backend,
		contacts: badger.NewContactRepository(backend),
		notes:    badger.NewNoteRepository(backend),
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.contacts.Close(); err != nil {
		db.logger.Error("error closing contact repository", "err", err)
		return err
	}
	if err := db.notes.Close(); err != nil {
		db.logger.Error("error closing note repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ContactRepository() storage.ContactRepository {
	return db.contacts
}

// LoadBook reads every stored contact and rebuilds the in-memory book,
// re-deriving allocator state from the stored identifiers.
func (db *Database) LoadBook(ctx context.Context) (*book.Book, error) {
	contacts, err := db.contacts.AllContacts(ctx)
	if err != nil {
		return nil, err
	}
	return book.FromSnapshot(contacts)
}

// AddContact inserts a contact into the book and writes it through to
// storage. If persistence fails the book insertion is rolled back so the
// two stay consistent.
func (db *Database) AddContact(ctx context.Context, b *book.Book, contact *core.Contact) (core.ID, error) {
	id, err := b.Add(contact)
	if err != nil {
		return 0, err
	}
	if err := db.contacts.PutContacts(ctx, contact); err != nil {
		b.Delete(id)
		return 0, err
	}
	return id, nil
}

// DeleteContact removes a contact from the book and from storage.
// Returns false when the identifier holds no live contact.
func (db *Database) DeleteContact(ctx context.Context, b *book.Book, id core.ID) (bool, error) {
	if !b.Delete(id) {
		return false, nil
	}
	if err := db.contacts.DeleteContacts(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return true, err
	}
	return true, nil
}

// UpdateContact revalidates an edited contact in the book and writes the
// new state through to storage.
func (db *Database) UpdateContact(ctx context.Context, b *book.Book, contact *core.Contact) error {
	if err := b.Update(contact); err != nil {
		return err
	}
	return db.contacts.PutContacts(ctx, contact)
}

// Suggest proposes the stored name, phone, or email closest to query.
// Returns search.ErrNoCandidates on an empty book.
func (db *Database) Suggest(b *book.Book, query string) (string, error) {
	return search.Suggest(query, b.SearchTerms())
}

// NewImporter creates a bulk importer over the given book.
func (db *Database) NewImporter(b *book.Book, opts ...ingest.Option) (*ingest.Importer, error) {
	return ingest.NewImporter(b, db.contacts, opts...)
}

// NoteRepository exposes the note persistence layer.
func (db *Database) NoteRepository() storage.NoteRepository {
	return db.notes
}

// LoadNotebook reads every stored note and rebuilds the in-memory
// notebook.
func (db *Database) LoadNotebook(ctx context.Context) (*notes.Notebook, error) {
	stored, err := db.notes.AllNotes(ctx)
	if err != nil {
		return nil, err
	}
	return notes.FromSnapshot(stored)
}

// CreateNote inserts a note into the notebook and writes it through to
// storage. If persistence fails the notebook insertion is rolled back.
func (db *Database) CreateNote(ctx context.Context, nb *notes.Notebook, note *core.Note) error {
	if err := nb.Create(note); err != nil {
		return err
	}
	if err := db.notes.PutNotes(ctx, note); err != nil {
		nb.Delete(note.Title)
		return err
	}
	return nil
}

// EditNote replaces a note's body in the notebook and writes the new
// state through to storage.
func (db *Database) EditNote(ctx context.Context, nb *notes.Notebook, title, body string) (*core.Note, error) {
	note, err := nb.Edit(title, body)
	if err != nil {
		return nil, err
	}
	if err := db.notes.PutNotes(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note from the notebook and from storage.
// Returns false when no note carries the title.
func (db *Database) DeleteNote(ctx context.Context, nb *notes.Notebook, title string) (bool, error) {
	if !nb.Delete(title) {
		return false, nil
	}
	if err := db.notes.DeleteNotes(ctx, title); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return true, err
	}
	return true, nil
}

// SuggestNote proposes the stored note title closest to query.
// Returns search.ErrNoCandidates on an empty notebook.
func (db *Database) SuggestNote(nb *notes.Notebook, query string) (string, error) {
	return search.Suggest(query, nb.Titles())
}
