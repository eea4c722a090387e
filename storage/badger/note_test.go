package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/rolodex/core"
	"github.com/poiesic/rolodex/storage"
)

func TestNoteRepositoryBasics(t *testing.T) {
	repo, backend, err := NewMemoryNoteRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	note := &core.Note{Title: "Zakupy", Body: "mleko, chleb"}

	if err := repo.PutNotes(ctx, note); err != nil {
		t.Fatalf("Failed to put note: %v", err)
	}

	got, err := repo.GetNote(ctx, "zakupy")
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if got.Title != "Zakupy" || got.Body != "mleko, chleb" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	if _, err := repo.GetNote(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing note: got %v, want ErrNotFound", err)
	}
}

func TestNoteRepositoryPutReplaces(t *testing.T) {
	repo, backend, err := NewMemoryNoteRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	if err := repo.PutNotes(ctx, &core.Note{Title: "Zakupy", Body: "mleko"}); err != nil {
		t.Fatalf("Failed to put note: %v", err)
	}
	if err := repo.PutNotes(ctx, &core.Note{Title: "zakupy", Body: "mleko, ser"}); err != nil {
		t.Fatalf("Failed to replace note: %v", err)
	}

	all, err := repo.AllNotes(ctx)
	if err != nil {
		t.Fatalf("AllNotes failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single stored note, got %d", len(all))
	}
	if all["zakupy"].Body != "mleko, ser" {
		t.Errorf("replacement did not take: %q", all["zakupy"].Body)
	}
}

func TestNoteRepositoryDelete(t *testing.T) {
	repo, backend, err := NewMemoryNoteRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	if err := repo.PutNotes(ctx, &core.Note{Title: "Zakupy", Body: "mleko"}); err != nil {
		t.Fatalf("Failed to put note: %v", err)
	}

	if err := repo.DeleteNotes(ctx, "ZAKUPY"); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}
	if err := repo.DeleteNotes(ctx, "Zakupy"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}

	all, err := repo.AllNotes(ctx)
	if err != nil {
		t.Fatalf("AllNotes failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty store, got %d notes", len(all))
	}
}
