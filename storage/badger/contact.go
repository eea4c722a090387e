package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/storage"
)

// ContactRepository implements storage.ContactRepository for BadgerDB.
type ContactRepository struct {
	backend *Backend
}

var _ storage.ContactRepository = (*ContactRepository)(nil)

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(backend *Backend) *ContactRepository {
	return &ContactRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *ContactRepository) Close() error {
	return nil
}

// PutContacts writes one or more contacts, inserting or replacing, and
// keeps the fingerprint index in step.
func (r *ContactRepository) PutContacts(ctx context.Context, contacts ...*core.Contact) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, contact := range contacts {
			key := makeContactKey(contact.Id)

			// Drop the old fingerprint entry if the identity changed.
			old, err := r.readContact(tx, key)
			if err != nil {
				return err
			}
			if old != nil && old.Fingerprint() != contact.Fingerprint() {
				if err := tx.Delete(makeFingerprintKey(old.Fingerprint())); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalContact(contact)); err != nil {
				return err
			}
			fpKey := makeFingerprintKey(contact.Fingerprint())
			if err := tx.Set(fpKey, storage.MarshalID(contact.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteContacts removes contacts and their fingerprint entries.
func (r *ContactRepository) DeleteContacts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeContactKey(id)

			contact, err := r.readContact(tx, key)
			if err != nil {
				return err
			}
			if contact == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeFingerprintKey(contact.Fingerprint())); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetContact retrieves a single contact by ID.
func (r *ContactRepository) GetContact(ctx context.Context, id core.ID) (*core.Contact, error) {
	var result *core.Contact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readContact(tx, makeContactKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllContacts returns the complete identifier-to-contact mapping.
func (r *ContactRepository) AllContacts(ctx context.Context) (map[core.ID]*core.Contact, error) {
	contacts := make(map[core.ID]*core.Contact)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(contactPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var contact *core.Contact
			err := item.Value(func(val []byte) error {
				var err error
				contact, err = storage.UnmarshalContact(val)
				return err
			})
			if err != nil {
				return err
			}
			contacts[contact.Id] = contact
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByFingerprint resolves a content fingerprint to a contact ID.
func (r *ContactRepository) FindByFingerprint(ctx context.Context, fingerprint core.ID) (core.ID, error) {
	var id core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeFingerprintKey(fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
	}, false)
	return id, err
}

// readContact reads a contact by key, returning nil when absent.
func (r *ContactRepository) readContact(tx *badger.Txn, key []byte) (*core.Contact, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var contact *core.Contact
	err = item.Value(func(val []byte) error {
		var err error
		contact, err = storage.UnmarshalContact(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}
