package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/storage"
)

func newTestContact(t *testing.T, id core.ID, name, phone string) *core.Contact {
	t.Helper()
	contact := &core.Contact{Id: id, Name: name}
	if phone != "" {
		p, err := core.NewPhone(phone)
		if err != nil {
			t.Fatalf("NewPhone failed: %v", err)
		}
		contact.AddPhone(p)
	}
	return contact
}

func TestContactRepositoryBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	contact := newTestContact(t, 1, "Anna Kowalska", "123456789")

	if err := repo.PutContacts(ctx, contact); err != nil {
		t.Fatalf("Failed to put contact: %v", err)
	}

	retrieved, err := repo.GetContact(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get contact: %v", err)
	}
	if retrieved.Name != "Anna Kowalska" {
		t.Fatalf("Expected 'Anna Kowalska', got '%s'", retrieved.Name)
	}
	if len(retrieved.Phones) != 1 || retrieved.Phones[0].String() != "123456789" {
		t.Fatalf("Phones did not round-trip: %v", retrieved.Phones)
	}
}

func TestGetContactNotFound(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	_, err = repo.GetContact(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteContacts(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	contact := newTestContact(t, 1, "Anna Kowalska", "123456789")

	if err := repo.PutContacts(ctx, contact); err != nil {
		t.Fatalf("Failed to put contact: %v", err)
	}
	if err := repo.DeleteContacts(ctx, 1); err != nil {
		t.Fatalf("Failed to delete contact: %v", err)
	}

	if _, err := repo.GetContact(ctx, 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Fingerprint entry is removed with the contact.
	if _, err := repo.FindByFingerprint(ctx, contact.Fingerprint()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected fingerprint gone after delete, got %v", err)
	}

	// Deleting again reports not found.
	if err := repo.DeleteContacts(ctx, 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestAllContacts(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	contacts := []*core.Contact{
		newTestContact(t, 1, "Anna Kowalska", "123456789"),
		newTestContact(t, 3, "Jan Nowak", "987654321"),
		newTestContact(t, 7, "Joanna Wiśniewska", ""),
	}
	if err := repo.PutContacts(ctx, contacts...); err != nil {
		t.Fatalf("Failed to put contacts: %v", err)
	}

	all, err := repo.AllContacts(ctx)
	if err != nil {
		t.Fatalf("Failed to load contacts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 contacts, got %d", len(all))
	}
	for _, want := range contacts {
		got, ok := all[want.Id]
		if !ok {
			t.Fatalf("Contact %d missing from mapping", want.Id)
		}
		if got.Name != want.Name {
			t.Fatalf("Contact %d name = %q, want %q", want.Id, got.Name, want.Name)
		}
	}
}

func TestFindByFingerprint(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	contact := newTestContact(t, 5, "Anna Kowalska", "123456789")
	if err := repo.PutContacts(ctx, contact); err != nil {
		t.Fatalf("Failed to put contact: %v", err)
	}

	id, err := repo.FindByFingerprint(ctx, contact.Fingerprint())
	if err != nil {
		t.Fatalf("FindByFingerprint failed: %v", err)
	}
	if id != 5 {
		t.Fatalf("FindByFingerprint = %d, want 5", id)
	}

	if _, err := repo.FindByFingerprint(ctx, core.ID(12345)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown fingerprint, got %v", err)
	}
}

func TestPutContactsUpdatesFingerprint(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	contact := newTestContact(t, 1, "Anna Kowalska", "123456789")
	if err := repo.PutContacts(ctx, contact); err != nil {
		t.Fatalf("Failed to put contact: %v", err)
	}
	oldFingerprint := contact.Fingerprint()

	if err := contact.Rename("Anna Nowak"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if err := repo.PutContacts(ctx, contact); err != nil {
		t.Fatalf("Failed to update contact: %v", err)
	}

	if _, err := repo.FindByFingerprint(ctx, oldFingerprint); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Stale fingerprint still resolves, err = %v", err)
	}
	id, err := repo.FindByFingerprint(ctx, contact.Fingerprint())
	if err != nil {
		t.Fatalf("FindByFingerprint after update failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("FindByFingerprint = %d, want 1", id)
	}
}
