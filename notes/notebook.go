package notes

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/rolodex/core"
)

// Notebook is the in-memory note store. Notes are keyed by normalized
// title; titles are unique case-insensitively. All enumeration is in
// ascending title order.
type Notebook struct {
	mu    sync.RWMutex
	notes map[string]*core.Note
}

// New creates an empty notebook.
func New() *Notebook {
	return &Notebook{notes: make(map[string]*core.Note)}
}

// FromSnapshot rebuilds a notebook from a persisted key-to-note mapping.
func FromSnapshot(notes map[string]*core.Note) (*Notebook, error) {
	nb := New()
	for key, note := range notes {
		if err := core.ValidateNote(note); err != nil {
			return nil, err
		}
		if note.Key() != key {
			return nil, fmt.Errorf("%w: key %q holds note titled %q", ErrNotFound, key, note.Title)
		}
		nb.notes[key] = note
	}
	return nb, nil
}

// Create validates the note and inserts it. Returns ErrTitleTaken when a
// note with the same normalized title already exists.
func (nb *Notebook) Create(note *core.Note) error {
	if err := core.ValidateNote(note); err != nil {
		return err
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()

	key := note.Key()
	if _, exists := nb.notes[key]; exists {
		return fmt.Errorf("%w: %q", ErrTitleTaken, note.Title)
	}

	now := time.Now().UTC()
	if note.InsertedAt.IsZero() {
		note.InsertedAt = now
	}
	note.UpdatedAt = now
	nb.notes[key] = note
	return nil
}

// Get returns the note with the given title, compared case-insensitively.
func (nb *Notebook) Get(title string) (*core.Note, bool) {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	note, ok := nb.notes[core.NoteKey(title)]
	return note, ok
}

// Edit replaces the body of the note with the given title and refreshes
// its UpdatedAt timestamp. Returns ErrNotFound if no such note exists.
func (nb *Notebook) Edit(title, body string) (*core.Note, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	note, ok := nb.notes[core.NoteKey(title)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	note.Body = body
	note.UpdatedAt = time.Now().UTC()
	return note, nil
}

// Delete removes the note with the given title. Returns false if no such
// note exists; the notebook is left unchanged in that case.
func (nb *Notebook) Delete(title string) bool {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	key := core.NoteKey(title)
	if _, ok := nb.notes[key]; !ok {
		return false
	}
	delete(nb.notes, key)
	return true
}

// Find returns every note whose title contains term case-insensitively,
// in ascending title order. An empty result is valid.
func (nb *Notebook) Find(term string) []*core.Note {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	lower := strings.ToLower(term)
	var found []*core.Note
	for _, key := range nb.sortedKeysLocked() {
		if strings.Contains(key, lower) {
			found = append(found, nb.notes[key])
		}
	}
	return found
}

// List returns all notes in ascending title order.
func (nb *Notebook) List() []*core.Note {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	ordered := make([]*core.Note, 0, len(nb.notes))
	for _, key := range nb.sortedKeysLocked() {
		ordered = append(ordered, nb.notes[key])
	}
	return ordered
}

// Titles returns the candidate set for fuzzy suggestions: every stored
// title, in ascending title order.
func (nb *Notebook) Titles() []string {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	titles := make([]string, 0, len(nb.notes))
	for _, key := range nb.sortedKeysLocked() {
		titles = append(titles, nb.notes[key].Title)
	}
	return titles
}

// Snapshot returns a copy of the key-to-note mapping for the persistence
// layer. Note pointers are shared, not copied.
func (nb *Notebook) Snapshot() map[string]*core.Note {
	nb.mu.RLock()
	defer nb.mu.RUnlock()

	snapshot := make(map[string]*core.Note, len(nb.notes))
	for key, note := range nb.notes {
		snapshot[key] = note
	}
	return snapshot
}

// Len returns the number of stored notes.
func (nb *Notebook) Len() int {
	nb.mu.RLock()
	defer nb.mu.RUnlock()
	return len(nb.notes)
}

func (nb *Notebook) sortedKeysLocked() []string {
	keys := make([]string, 0, len(nb.notes))
	for key := range nb.notes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
