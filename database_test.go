package rolodex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/rolodex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.ContactRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func newContact(t *testing.T, name, phone string) *core.Contact {
	t.Helper()
	contact := &core.Contact{Name: name}
	p, err := core.NewPhone(phone)
	require.NoError(t, err)
	contact.AddPhone(p)
	return contact
}

func TestDatabase_AddAndLoad(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	b, err := db.LoadBook(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, b.Len())

	id, err := db.AddContact(ctx, b, newContact(t, "Anna Kowalska", "123456789"))
	require.NoError(t, err)
	assert.Equal(t, core.ID(1), id)

	_, err = db.AddContact(ctx, b, newContact(t, "Jan Nowak", "987654321"))
	require.NoError(t, err)

	// A fresh book built from storage mirrors the live one.
	reloaded, err := db.LoadBook(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())
	contact, ok := reloaded.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Anna Kowalska", contact.Name)
}

func TestDatabase_DeleteAndRecycleAcrossReload(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	b, err := db.LoadBook(ctx)
	require.NoError(t, err)

	for _, name := range []string{"Anna Kowalska", "Jan Nowak", "Joanna Wiśniewska"} {
		_, err := db.AddContact(ctx, b, newContact(t, name, "123456789"))
		require.NoError(t, err)
	}

	deleted, err := db.DeleteContact(ctx, b, 2)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.DeleteContact(ctx, b, 99)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Reload: the freed identifier is reused first.
	reloaded, err := db.LoadBook(ctx)
	require.NoError(t, err)
	id, err := db.AddContact(ctx, reloaded, newContact(t, "Piotr Zieliński", "111222333"))
	require.NoError(t, err)
	assert.Equal(t, core.ID(2), id)
}

func TestDatabase_UpdateContact(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	b, err := db.LoadBook(ctx)
	require.NoError(t, err)

	contact := newContact(t, "Anna Kowalska", "123456789")
	_, err = db.AddContact(ctx, b, contact)
	require.NoError(t, err)

	require.NoError(t, contact.Rename("Anna Nowak"))
	require.NoError(t, db.UpdateContact(ctx, b, contact))

	reloaded, err := db.LoadBook(ctx)
	require.NoError(t, err)
	got, ok := reloaded.Get(contact.Id)
	require.True(t, ok)
	assert.Equal(t, "Anna Nowak", got.Name)
}

func TestDatabase_Suggest(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	b, err := db.LoadBook(ctx)
	require.NoError(t, err)

	// Empty book: suggestions have no candidates.
	_, err = db.Suggest(b, "anna")
	assert.Error(t, err)

	_, err = db.AddContact(ctx, b, newContact(t, "Anna Kowalska", "123456789"))
	require.NoError(t, err)
	_, err = db.AddContact(ctx, b, newContact(t, "Jan Nowak", "987654321"))
	require.NoError(t, err)

	got, err := db.Suggest(b, "Anna Kowalsky")
	require.NoError(t, err)
	assert.Equal(t, "Anna Kowalska", got)
}

func TestDatabase_NewImporter(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	defer db.Close()

	b, err := db.LoadBook(context.Background())
	require.NoError(t, err)

	imp, err := db.NewImporter(b)
	require.NoError(t, err)
	imp.Release()
}

func TestDatabase_NotesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := NewDatabase(filepath.Join(dir, "db"))
	require.NoError(t, err)

	nb, err := db.LoadNotebook(ctx)
	require.NoError(t, err)

	require.NoError(t, db.CreateNote(ctx, nb, &core.Note{Title: "Zakupy", Body: "mleko"}))
	require.NoError(t, db.CreateNote(ctx, nb, &core.Note{Title: "Urodziny Ani", Body: "kup prezent"}))

	_, err = db.EditNote(ctx, nb, "zakupy", "mleko, chleb")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDatabase(filepath.Join(dir, "db"))
	require.NoError(t, err)
	defer db.Close()

	nb, err = db.LoadNotebook(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, nb.Len())

	note, ok := nb.Get("Zakupy")
	require.True(t, ok)
	assert.Equal(t, "mleko, chleb", note.Body)

	deleted, err := db.DeleteNote(ctx, nb, "zakupy")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, nb.Len())

	deleted, err = db.DeleteNote(ctx, nb, "zakupy")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDatabase_SuggestNote(t *testing.T) {
	db, err := NewMemoryDatabase()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	nb, err := db.LoadNotebook(ctx)
	require.NoError(t, err)

	_, err = db.SuggestNote(nb, "zakupy")
	assert.Error(t, err)

	require.NoError(t, db.CreateNote(ctx, nb, &core.Note{Title: "Zakupy", Body: "mleko"}))
	require.NoError(t, db.CreateNote(ctx, nb, &core.Note{Title: "Remont", Body: "farba"}))

	suggestion, err := db.SuggestNote(nb, "Zakuby")
	require.NoError(t, err)
	assert.Equal(t, "Zakupy", suggestion)
}
