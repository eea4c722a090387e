package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(backend *Backend) *NoteRepository {
	return &NoteRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *NoteRepository) Close() error {
	return nil
}

// PutNotes writes one or more notes, inserting or replacing.
func (r *NoteRepository) PutNotes(ctx context.Context, notes ...*core.Note) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			if err := tx.Set(makeNoteKey(note.Key()), storage.MarshalNote(note)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteNotes removes notes by title.
func (r *NoteRepository) DeleteNotes(ctx context.Context, titles ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, title := range titles {
			key := makeNoteKey(core.NoteKey(title))

			if _, err := tx.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			} else if err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNote retrieves a single note by title.
func (r *NoteRepository) GetNote(ctx context.Context, title string) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeNoteKey(core.NoteKey(title)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalNote(val)
			return err
		})
	}, false)
	return result, err
}

// AllNotes returns the complete key-to-note mapping.
func (r *NoteRepository) AllNotes(ctx context.Context) (map[string]*core.Note, error) {
	notes := make(map[string]*core.Note)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(notePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var note *core.Note
			err := item.Value(func(val []byte) error {
				var err error
				note, err = storage.UnmarshalNote(val)
				return err
			})
			if err != nil {
				return err
			}
			notes[note.Key()] = note
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return notes, nil
}
