package book

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/rolodex/core"
)

// DefaultPageSize is the number of contacts per page when a caller does
// not specify one.
const DefaultPageSize = 5

// Entry pairs a contact with its identifier for disambiguation flows.
type Entry struct {
	Id      core.ID
	Contact *core.Contact
}

// Book is the in-memory contact store. It owns the identifier-to-contact
// mapping and the allocator that assigns and recycles identifiers; both
// are guarded by a single mutex so Add and Delete are observed as atomic
// units. All enumeration is in ascending identifier order.
//
// Contacts handed to Add are owned by the book afterwards. Callers that
// modify a contact obtained from Get must call Update to refresh the
// UpdatedAt timestamp.
type Book struct {
	mu       sync.RWMutex
	contacts map[core.ID]*core.Contact
	alloc    *core.Allocator
}

// New creates an empty book.
func New() *Book {
	return &Book{
		contacts: make(map[core.ID]*core.Contact),
		alloc:    core.NewAllocator(),
	}
}

// FromSnapshot rebuilds a book from a persisted identifier-to-contact
// mapping. Allocator state is re-derived by reserving every identifier
// present; gaps in the sequence return to the reuse pool naturally on the
// next allocations.
func FromSnapshot(contacts map[core.ID]*core.Contact) (*Book, error) {
	b := New()
	for id, contact := range contacts {
		if contact == nil {
			return nil, fmt.Errorf("%w: nil contact for id %d", core.ErrInvalidContact, id)
		}
		if contact.Id != id {
			return nil, fmt.Errorf("%w: key %d holds contact with id %d",
				core.ErrIdentifierCollision, id, contact.Id)
		}
		if err := b.alloc.Reserve(id); err != nil {
			return nil, err
		}
		b.contacts[id] = contact
	}
	return b, nil
}

// Add validates the contact, assigns it an identifier, and inserts it.
// The assigned identifier is returned.
func (b *Book) Add(contact *core.Contact) (core.ID, error) {
	if err := core.ValidateContact(contact); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.alloc.Allocate()
	if _, exists := b.contacts[id]; exists {
		// Allocator accounting diverged from the mapping. Unrecoverable.
		panic(fmt.Errorf("%w: allocator assigned live id %d", core.ErrIdentifierCollision, id))
	}

	now := time.Now().UTC()
	contact.Id = id
	if contact.InsertedAt.IsZero() {
		contact.InsertedAt = now
	}
	contact.UpdatedAt = now
	b.contacts[id] = contact
	return id, nil
}

// Delete removes the contact with the given identifier and returns it to
// the reuse pool. Returns false if no such contact exists; the book is
// left unchanged in that case.
func (b *Book) Delete(id core.ID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.contacts[id]; !ok {
		return false
	}
	delete(b.contacts, id)
	if err := b.alloc.Release(id); err != nil {
		panic(err)
	}
	return true
}

// Get returns the contact with the given identifier.
func (b *Book) Get(id core.ID) (*core.Contact, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	contact, ok := b.contacts[id]
	return contact, ok
}

// Update revalidates an edited contact and refreshes its UpdatedAt
// timestamp. Returns ErrNotFound if the identifier is not live.
func (b *Book) Update(contact *core.Contact) error {
	if err := core.ValidateContact(contact); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.contacts[contact.Id]; !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, contact.Id)
	}
	contact.UpdatedAt = time.Now().UTC()
	b.contacts[contact.Id] = contact
	return nil
}

// FindExact returns every contact whose name contains term
// case-insensitively, or whose phone or email list has an entry
// containing term with exact case. Each contact appears at most once,
// in ascending identifier order. An empty result is valid.
func (b *Book) FindExact(term string) []*core.Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lower := strings.ToLower(term)
	var found []*core.Contact
	for _, id := range b.sortedIDsLocked() {
		contact := b.contacts[id]
		if strings.Contains(strings.ToLower(contact.Name), lower) {
			found = append(found, contact)
			continue
		}
		if contactFieldsContain(contact, term) {
			found = append(found, contact)
		}
	}
	return found
}

// FindByName returns entries whose name contains name case-insensitively,
// in ascending identifier order. Used to disambiguate before edit and
// delete.
func (b *Book) FindByName(name string) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lower := strings.ToLower(name)
	var matching []Entry
	for _, id := range b.sortedIDsLocked() {
		contact := b.contacts[id]
		if strings.Contains(strings.ToLower(contact.Name), lower) {
			matching = append(matching, Entry{Id: id, Contact: contact})
		}
	}
	return matching
}

// Pages returns successive fixed-size groups of contacts in ascending
// identifier order. The final page may be shorter than pageSize. Every
// call returns a fresh, restartable sequence; no cursor state lives on
// the book. A pageSize below 1 falls back to DefaultPageSize.
func (b *Book) Pages(pageSize int) iter.Seq[[]*core.Contact] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return func(yield func([]*core.Contact) bool) {
		b.mu.RLock()
		ordered := make([]*core.Contact, 0, len(b.contacts))
		for _, id := range b.sortedIDsLocked() {
			ordered = append(ordered, b.contacts[id])
		}
		b.mu.RUnlock()

		for start := 0; start < len(ordered); start += pageSize {
			end := min(start+pageSize, len(ordered))
			if !yield(ordered[start:end]) {
				return
			}
		}
	}
}

// SearchTerms collects every stored name, then every phone, then every
// email, each group in ascending identifier order. This is the candidate
// set for fuzzy suggestions; the grouping makes name matches win distance
// ties against phones and emails.
func (b *Book) SearchTerms() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := b.sortedIDsLocked()
	terms := make([]string, 0, len(ids))
	for _, id := range ids {
		terms = append(terms, b.contacts[id].Name)
	}
	for _, id := range ids {
		for _, p := range b.contacts[id].Phones {
			terms = append(terms, p.String())
		}
	}
	for _, id := range ids {
		for _, e := range b.contacts[id].Emails {
			terms = append(terms, e.String())
		}
	}
	return terms
}

// Snapshot returns a copy of the identifier-to-contact mapping for the
// persistence layer. Contact pointers are shared, not copied.
func (b *Book) Snapshot() map[core.ID]*core.Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := make(map[core.ID]*core.Contact, len(b.contacts))
	for id, contact := range b.contacts {
		snapshot[id] = contact
	}
	return snapshot
}

// Len returns the number of live contacts.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.contacts)
}

// IDs returns the live identifiers in ascending order.
func (b *Book) IDs() []core.ID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sortedIDsLocked()
}

func (b *Book) sortedIDsLocked() []core.ID {
	ids := make([]core.ID, 0, len(b.contacts))
	for id := range b.contacts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// contactFieldsContain reports whether any phone or email contains term
// with exact case.
func contactFieldsContain(contact *core.Contact, term string) bool {
	for _, p := range contact.Phones {
		if strings.Contains(p.String(), term) {
			return true
		}
	}
	for _, e := range contact.Emails {
		if strings.Contains(e.String(), term) {
			return true
		}
	}
	return false
}
